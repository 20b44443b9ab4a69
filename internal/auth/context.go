package auth

import (
	"context"
	"net/http"
)

// UserContext identifies the acting tenant and user for a request. The core
// never reads ambient session state; callers attach this explicitly.
type UserContext struct {
	CompanyID string
	UserID    string
	Role      string
}

type ctxKey struct{}

func WithUser(ctx context.Context, uc UserContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, uc)
}

func FromContext(ctx context.Context) (UserContext, bool) {
	uc, ok := ctx.Value(ctxKey{}).(UserContext)
	return uc, ok
}

func GetCompanyID(ctx context.Context) string {
	if uc, ok := FromContext(ctx); ok {
		return uc.CompanyID
	}
	return ""
}

func GetUserID(ctx context.Context) string {
	if uc, ok := FromContext(ctx); ok {
		return uc.UserID
	}
	return ""
}

// Middleware populates the request context from the identity headers set by
// the API gateway. Requests without a company id are rejected up front since
// every query below this point is tenant scoped.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		companyID := r.Header.Get("X-Company-ID")
		if companyID == "" {
			http.Error(w, "missing company id", http.StatusUnauthorized)
			return
		}
		uc := UserContext{
			CompanyID: companyID,
			UserID:    r.Header.Get("X-User-ID"),
			Role:      r.Header.Get("X-User-Role"),
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), uc)))
	})
}
