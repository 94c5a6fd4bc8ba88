package api

import (
	"net/http"

	"github.com/ruteri/inventor-registry/interfaces"
	"github.com/ruteri/inventor-registry/registry"
)

// CallerIdentityHeader carries the identity of the caller of a state-mutating request.
const CallerIdentityHeader = "X-Caller-Identity"

// RegisterRequest is the body of POST /api/inventors.
type RegisterRequest struct {
	Name        string `json:"name"`
	Credentials string `json:"credentials"`
}

// TransferAdminRequest is the body of POST /api/admin/transfer.
type TransferAdminRequest struct {
	NewAdmin string `json:"new_admin"`
}

// BoolResponse answers the registered/verified lookups.
type BoolResponse struct {
	Value bool `json:"value"`
}

// AdminResponse answers GET /api/admin.
type AdminResponse struct {
	Admin interfaces.Identity `json:"admin"`
}

// InventorResponse answers GET /api/inventors/{identity}.
type InventorResponse struct {
	Identity interfaces.Identity `json:"identity"`
	interfaces.InventorRecord
}

// StatusForResult maps a registry result to the HTTP status it is served with.
func StatusForResult(r registry.Result) int {
	if r.IsOk() {
		return http.StatusOK
	}

	switch r.Code() {
	case registry.CodeDuplicateRegistration:
		return http.StatusConflict
	case registry.CodeUnauthorized:
		return http.StatusForbidden
	case registry.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
