package domain

// Stats is the dashboard aggregate from GET /admin/stats.
type Stats struct {
	Users      int `json:"users"`
	Categories int `json:"categories"`
	Requests   int `json:"requests"`
}

// Session is the authenticated super-admin context: the bearer token and
// the user it belongs to. A valid session always carries a SUPER_ADMIN user.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
