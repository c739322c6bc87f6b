package domain

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID   string `json:"user_id"`
	TenantID uint   `json:"tenant_id"`
	Roles    []Role `json:"roles"`
}

// Can reports whether any of the principal's roles grants c.
func (p *Principal) Can(c Capability) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r.Can(c) {
			return true
		}
	}
	return false
}
