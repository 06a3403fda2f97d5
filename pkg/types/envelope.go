package types

// Envelope is the JSON wrapper shared by every API response. Success is
// always present; the other fields appear only when an endpoint sets them.
//
//	POST /login        {success, token, message}
//	GET /items         {success, data} or {success, error}
//	POST /items        {success, message, id} or {success, message, error}
//	PUT /items/{id}    {success} or {success, error}
//	DELETE /items/{id} {success} or {success, error}
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Token   string `json:"token,omitempty"`
	ID      int64  `json:"id,omitempty"`
	Data    []Item `json:"data,omitempty"`
}

// ListEnvelope is the success body of GET /items. Data is always rendered,
// as an empty array when the store holds no items.
type ListEnvelope struct {
	Success bool   `json:"success"`
	Data    []Item `json:"data"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateItemRequest is the body of POST /items.
type CreateItemRequest struct {
	Title string `json:"title"`
}

// UpdateItemRequest is the body of PUT /items/{id}. Completed is optional.
type UpdateItemRequest struct {
	Title     string `json:"title"`
	Completed *bool  `json:"completed,omitempty"`
}
