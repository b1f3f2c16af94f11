package views

type TokenData struct {
	Token string `json:"token"`
}

type LoginResponse struct {
	Data TokenData `json:"data"`
}
