package schemas

// AuthURLResponse carries the Kite login redirect handed to the browser.
type AuthURLResponse struct {
	AuthorizationURL string `json:"authorizationUrl"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
