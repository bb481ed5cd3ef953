package domain

import "encoding/json"

type UserID string

// User is the account payload returned by the remote service. The service
// owns its shape; the client only relies on the fields below and keeps the
// rest opaque in Extra.
type User struct {
	ID      UserID
	Email   string
	Name    string
	Balance float64
	Extra   map[string]json.RawMessage
}

func (u *User) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var parsed User
	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &parsed.ID); err != nil {
			return err
		}
		delete(raw, "id")
	}
	if v, ok := raw["email"]; ok {
		if err := json.Unmarshal(v, &parsed.Email); err != nil {
			return err
		}
		delete(raw, "email")
	}
	if v, ok := raw["name"]; ok {
		if err := json.Unmarshal(v, &parsed.Name); err != nil {
			return err
		}
		delete(raw, "name")
	}
	if v, ok := raw["balance"]; ok {
		if err := json.Unmarshal(v, &parsed.Balance); err != nil {
			return err
		}
		delete(raw, "balance")
	}
	if len(raw) > 0 {
		parsed.Extra = raw
	}

	*u = parsed
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Extra)+4)
	for k, v := range u.Extra {
		out[k] = v
	}
	out["id"] = u.ID
	out["email"] = u.Email
	out["name"] = u.Name
	out["balance"] = u.Balance
	return json.Marshal(out)
}

// NewUserProfile is the payload posted to create an account.
type NewUserProfile struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Token    string `json:"token"`
}
