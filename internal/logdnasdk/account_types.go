package logdnasdk

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	Email     string
	Key       string // optional ingestion key to claim
	FirstName string
	LastName  string
	Company   string
}

type RegisterResponse struct {
	Account string `json:"account"`
	Key     string `json:"key"`
	Token   string `json:"token,omitempty"`
}

type LoginResponse struct {
	Accounts []string `json:"accounts"`
	Keys     []string `json:"keys"`
	Token    string   `json:"token"`
}
