package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hongminglow/employee-be/internal/apperr"
	"github.com/hongminglow/employee-be/internal/auth"
	"github.com/hongminglow/employee-be/internal/http/respond"
	"github.com/hongminglow/employee-be/internal/logging"
	"github.com/hongminglow/employee-be/internal/models/dto"
)

// MaxBodyBytes bounds request bodies; photos may arrive base64-encoded inline.
const MaxBodyBytes = 15 << 20

const (
	internalErrorMessage    = "Internal server error"
	invalidVariablesMessage = "invalid variables."
)

// Directory is the set of operations served by the endpoint.
type Directory interface {
	Login(ctx context.Context, in dto.LoginInput) (dto.AuthPayload, error)
	Signup(ctx context.Context, in dto.SignupInput) (dto.AuthPayload, error)
	GetAllEmployees(ctx context.Context) (dto.EmployeesPayload, error)
	SearchEmployeeByEid(ctx context.Context, eid string) (dto.EmployeePayload, error)
	SearchEmployeeByDesignationOrDepartment(ctx context.Context, in dto.SearchInput) (dto.EmployeesPayload, error)
	AddEmployee(ctx context.Context, in dto.EmployeeInput) (dto.EmployeePayload, error)
	UpdateEmployeeByEid(ctx context.Context, eid string, in dto.EmployeeInput) (dto.EmployeePayload, error)
	DeleteEmployeeByEid(ctx context.Context, eid string) (dto.DeletePayload, error)
}

// OperationRequest is the body of a call: an operation name plus its variables.
type OperationRequest struct {
	Operation string          `json:"operation"`
	Variables json.RawMessage `json:"variables"`
}

type operation struct {
	// protected operations reject anonymous callers before their variables are read.
	protected bool
	run       func(ctx context.Context, vars json.RawMessage) (any, error)
}

func public(run func(context.Context, json.RawMessage) (any, error)) operation {
	return operation{run: run}
}

func protected(run func(context.Context, json.RawMessage) (any, error)) operation {
	return operation{protected: true, run: run}
}

// OperationsHandler dispatches named operations to the directory.
type OperationsHandler struct {
	ops map[string]operation
	log logging.Logger
}

// NewOperationsHandler builds the dispatch table for dir.
func NewOperationsHandler(dir Directory, log logging.Logger) *OperationsHandler {
	if log == nil {
		log = logging.Discard()
	}
	return &OperationsHandler{
		log: log.With("component", "operations"),
		ops: map[string]operation{
			"login": public(func(ctx context.Context, raw json.RawMessage) (any, error) {
				var v struct {
					Input dto.LoginInput `json:"input"`
				}
				if err := decodeVariables(raw, &v); err != nil {
					return nil, err
				}
				return dir.Login(ctx, v.Input)
			}),
			"signup": public(func(ctx context.Context, raw json.RawMessage) (any, error) {
				var v struct {
					Input dto.SignupInput `json:"input"`
				}
				if err := decodeVariables(raw, &v); err != nil {
					return nil, err
				}
				return dir.Signup(ctx, v.Input)
			}),
			"getAllEmployees": protected(func(ctx context.Context, _ json.RawMessage) (any, error) {
				return dir.GetAllEmployees(ctx)
			}),
			"searchEmployeeByEid": protected(func(ctx context.Context, raw json.RawMessage) (any, error) {
				var v struct {
					EID recordID `json:"eid"`
				}
				if err := decodeVariables(raw, &v); err != nil {
					return nil, err
				}
				return dir.SearchEmployeeByEid(ctx, string(v.EID))
			}),
			"searchEmployeeByDesignationOrDepartment": protected(func(ctx context.Context, raw json.RawMessage) (any, error) {
				var v struct {
					Input dto.SearchInput `json:"input"`
				}
				if err := decodeVariables(raw, &v); err != nil {
					return nil, err
				}
				return dir.SearchEmployeeByDesignationOrDepartment(ctx, v.Input)
			}),
			"addEmployee": protected(func(ctx context.Context, raw json.RawMessage) (any, error) {
				var v struct {
					Input dto.EmployeeInput `json:"input"`
				}
				if err := decodeVariables(raw, &v); err != nil {
					return nil, err
				}
				return dir.AddEmployee(ctx, v.Input)
			}),
			"updateEmployeeByEid": protected(func(ctx context.Context, raw json.RawMessage) (any, error) {
				var v struct {
					EID   recordID          `json:"eid"`
					Input dto.EmployeeInput `json:"input"`
				}
				if err := decodeVariables(raw, &v); err != nil {
					return nil, err
				}
				return dir.UpdateEmployeeByEid(ctx, string(v.EID), v.Input)
			}),
			"deleteEmployeeByEid": protected(func(ctx context.Context, raw json.RawMessage) (any, error) {
				var v struct {
					EID recordID `json:"eid"`
				}
				if err := decodeVariables(raw, &v); err != nil {
					return nil, err
				}
				return dir.DeleteEmployeeByEid(ctx, string(v.EID))
			}),
		},
	}
}

// Register attaches the operation endpoint to the mux.
func (h *OperationsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/graphql", h.handle)
}

func (h *OperationsHandler) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed", apperr.CodeBadInput)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	var req OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, http.StatusRequestEntityTooLarge, "request body too large", apperr.CodeBadInput)
			return
		}
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload", apperr.CodeBadInput)
		return
	}

	op, ok := h.ops[req.Operation]
	if !ok {
		respond.Error(w, http.StatusBadRequest, "unknown operation: "+strconv.Quote(req.Operation), apperr.CodeBadInput)
		return
	}

	if op.protected {
		if err := auth.RequireAuthenticated(r.Context()); err != nil {
			h.writeError(w, r, req.Operation, err)
			return
		}
	}

	data, err := op.run(r.Context(), req.Variables)
	if err != nil {
		h.writeError(w, r, req.Operation, err)
		return
	}
	respond.Data(w, data)
}

func (h *OperationsHandler) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	code := apperr.CodeOf(err)
	message := err.Error()
	if code == apperr.CodeInternal {
		h.log.Error(r.Context(), "operation failed", "operation", operation, "err", err)
		message = internalErrorMessage
	}
	respond.Error(w, apperr.HTTPStatus(code), message, code)
}

func decodeVariables(raw json.RawMessage, dst any) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return apperr.BadInput(invalidVariablesMessage)
	}
	return nil
}

// recordID accepts an identifier given as a JSON string or number.
type recordID string

func (id *recordID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = recordID(s)
		return nil
	}
	if string(data) == "null" {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = recordID(n.String())
	return nil
}
