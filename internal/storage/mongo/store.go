// Package mongo provides a MongoDB-backed storage.Store.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hongminglow/employee-be/internal/models"
	"github.com/hongminglow/employee-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

const (
	accountsCollection  = "accounts"
	employeesCollection = "employees"
)

type accountDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d accountDoc) model() models.Account {
	return models.Account{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type employeeDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FirstName     string             `bson:"first_name"`
	LastName      string             `bson:"last_name"`
	Email         string             `bson:"email"`
	Gender        string             `bson:"gender"`
	Designation   string             `bson:"designation"`
	Salary        float64            `bson:"salary"`
	DateOfJoining time.Time          `bson:"date_of_joining"`
	Department    string             `bson:"department"`
	EmployeePhoto string             `bson:"employee_photo"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func newEmployeeDoc(e models.Employee) employeeDoc {
	return employeeDoc{
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Gender:        e.Gender,
		Designation:   e.Designation,
		Salary:        e.Salary,
		DateOfJoining: e.DateOfJoining,
		Department:    e.Department,
		EmployeePhoto: e.EmployeePhoto,
	}
}

func (d employeeDoc) model() models.Employee {
	return models.Employee{
		ID:            d.ID.Hex(),
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		Gender:        d.Gender,
		Designation:   d.Designation,
		Salary:        d.Salary,
		DateOfJoining: d.DateOfJoining,
		Department:    d.Department,
		EmployeePhoto: d.EmployeePhoto,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// Store persists accounts and employees in two collections.
type Store struct {
	client    *mongo.Client
	accounts  *mongo.Collection
	employees *mongo.Collection
}

// NewStore connects to uri, verifies the connection and ensures unique indexes.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:    client,
		accounts:  db.Collection(accountsCollection),
		employees: db.Collection(employeesCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	if _, err := s.accounts.Indexes().CreateMany(ctx, []mongo.IndexModel{unique("username"), unique("email")}); err != nil {
		return fmt.Errorf("create account indexes: %w", err)
	}
	if _, err := s.employees.Indexes().CreateOne(ctx, unique("email")); err != nil {
		return fmt.Errorf("create employee indexes: %w", err)
	}
	return nil
}

// Ping verifies the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}

// now matches the millisecond precision BSON dates are stored with.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (s *Store) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	ts := now()
	doc := accountDoc{
		ID:           primitive.NewObjectID(),
		Username:     account.Username,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if _, err := s.accounts.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Account{}, storage.ErrAlreadyExists
		}
		return models.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return doc.model(), nil
}

func (s *Store) FindAccountByIdentifier(ctx context.Context, identifier string) (models.Account, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": identifier},
	}}
	var doc accountDoc
	if err := s.accounts.FindOne(ctx, filter).Decode(&doc); err != nil {
		return models.Account{}, mapReadError(err, "find account")
	}
	return doc.model(), nil
}

func (s *Store) AccountExists(ctx context.Context, username, email string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}}
	n, err := s.accounts.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return n > 0, nil
}

func (s *Store) CreateEmployee(ctx context.Context, employee models.Employee) (models.Employee, error) {
	ts := now()
	doc := newEmployeeDoc(employee)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = ts
	doc.UpdatedAt = ts
	if _, err := s.employees.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Employee{}, storage.ErrAlreadyExists
		}
		return models.Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	return doc.model(), nil
}

func (s *Store) FindEmployeeByID(ctx context.Context, id string) (models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Employee{}, storage.ErrNotFound
	}
	var doc employeeDoc
	if err := s.employees.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return models.Employee{}, mapReadError(err, "find employee")
	}
	return doc.model(), nil
}

func (s *Store) EmployeeEmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	filter := bson.M{"email": email}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}
	n, err := s.employees.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count employees: %w", err)
	}
	return n > 0, nil
}

func (s *Store) ListEmployees(ctx context.Context, filter storage.EmployeeFilter) ([]models.Employee, error) {
	query := bson.M{}
	if filter.Designation != "" {
		query["designation"] = exactFold(filter.Designation)
	}
	if filter.Department != "" {
		query["department"] = exactFold(filter.Department)
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cursor, err := s.employees.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []employeeDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}

	out := make([]models.Employee, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, id string, patch storage.EmployeePatch) (models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Employee{}, storage.ErrNotFound
	}

	set := bson.M{"updated_at": now()}
	if patch.FirstName != nil {
		set["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["last_name"] = *patch.LastName
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Gender != nil {
		set["gender"] = *patch.Gender
	}
	if patch.Designation != nil {
		set["designation"] = *patch.Designation
	}
	if patch.Salary != nil {
		set["salary"] = *patch.Salary
	}
	if patch.DateOfJoining != nil {
		set["date_of_joining"] = *patch.DateOfJoining
	}
	if patch.Department != nil {
		set["department"] = *patch.Department
	}
	if patch.EmployeePhoto != nil {
		set["employee_photo"] = *patch.EmployeePhoto
	}

	result := s.employees.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := result.Err(); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Employee{}, storage.ErrAlreadyExists
		}
		return models.Employee{}, mapReadError(err, "update employee")
	}

	var doc employeeDoc
	if err := result.Decode(&doc); err != nil {
		return models.Employee{}, fmt.Errorf("decode updated employee: %w", err)
	}
	return doc.model(), nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) (models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Employee{}, storage.ErrNotFound
	}
	var doc employeeDoc
	if err := s.employees.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return models.Employee{}, mapReadError(err, "delete employee")
	}
	return doc.model(), nil
}

// exactFold matches value exactly, ignoring case.
func exactFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

func mapReadError(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
