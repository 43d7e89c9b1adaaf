package domain

// Registry is the singleton custody record: who administers the system,
// whether new purchases are halted, and how much collected money the
// registry currently holds. The admin account is set on first boot and
// never changes afterwards.
type Registry struct {
	Admin   string
	Paused  bool
	Balance int64
}

// IsAdmin reports whether account is the administrator.
func (r Registry) IsAdmin(account string) bool {
	return account != "" && account == r.Admin
}
