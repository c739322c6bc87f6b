package tenancy

import (
	"context"
	"errors"
	"net"
	"net/http"
	"slices"
	"strings"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
)

type ResolverConfig struct {
	// Header is the trusted header carrying the tenant code.
	Header string
	// ReservedLabels are host labels that never name a tenant.
	ReservedLabels []string
	// BaseDomain, when set, restricts subdomain resolution to direct children of it.
	BaseDomain string
	// QueryParam is only honoured when AllowQueryParam is set (non-production).
	QueryParam      string
	AllowQueryParam bool
}

// Resolver maps a request to a tenant. It does not judge tenant status.
type Resolver struct {
	cfg       ResolverConfig
	directory Directory
}

func NewResolver(cfg ResolverConfig, directory Directory) *Resolver {
	reserved := make([]string, 0, len(cfg.ReservedLabels))
	for _, l := range cfg.ReservedLabels {
		reserved = append(reserved, strings.ToLower(strings.TrimSpace(l)))
	}
	cfg.ReservedLabels = reserved
	cfg.BaseDomain = strings.ToLower(strings.Trim(cfg.BaseDomain, "."))
	return &Resolver{cfg: cfg, directory: directory}
}

// Extract returns the first non-empty tenant signal in priority order:
// header, subdomain, then the query parameter when allowed.
func (r *Resolver) Extract(req *http.Request) (Signal, bool) {
	if code := domain.NormalizeTenantCode(req.Header.Get(r.cfg.Header)); code != "" {
		return Signal{Code: code, Method: MethodHeader}, true
	}
	if code := r.subdomain(req.Host); code != "" {
		return Signal{Code: code, Method: MethodSubdomain}, true
	}
	if r.cfg.AllowQueryParam && r.cfg.QueryParam != "" {
		if code := domain.NormalizeTenantCode(req.URL.Query().Get(r.cfg.QueryParam)); code != "" {
			return Signal{Code: code, Method: MethodQuery}, true
		}
	}
	return Signal{}, false
}

// Resolve extracts the signal and looks the tenant up in the directory.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) (*domain.Tenant, Signal, error) {
	sig, ok := r.Extract(req)
	if !ok {
		return nil, Signal{}, Unidentified(r.cfg.Header)
	}
	if !domain.IsValidTenantCode(sig.Code) {
		return nil, sig, TenantNotFound(sig.Code)
	}

	tenant, err := r.directory.FindByCode(ctx, sig.Code)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, sig, TenantNotFound(sig.Code)
		}
		return nil, sig, StoreUnavailable(sig.Code, err)
	}
	return tenant, sig, nil
}

func (r *Resolver) subdomain(host string) string {
	host = strings.ToLower(strings.TrimSuffix(stripPort(host), "."))
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}

	var label string
	if r.cfg.BaseDomain != "" {
		rest, ok := strings.CutSuffix(host, "."+r.cfg.BaseDomain)
		if !ok || rest == "" || strings.Contains(rest, ".") {
			return ""
		}
		label = rest
	} else {
		labels := strings.Split(host, ".")
		if len(labels) < 3 {
			return ""
		}
		label = labels[0]
	}

	if slices.Contains(r.cfg.ReservedLabels, label) {
		return ""
	}
	return label
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
