package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// CLI holds the client configuration
type CLI struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func (c *CLI) get(path string) ([]byte, error) {
	return c.request("GET", path, nil)
}

func (c *CLI) post(path string, body interface{}) ([]byte, error) {
	return c.request("POST", path, body)
}

func (c *CLI) request(method, path string, body interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s %s: %s (%d)", method, path, bytes.TrimSpace(data), resp.StatusCode)
	}

	return data, nil
}

func (c *CLI) signupCommand(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: dcds-cli signup <username> <email> <password>")
	}

	data, err := c.post("/api/v1/auth/signup", map[string]string{
		"username":             args[0],
		"email":                args[1],
		"password":             args[2],
		"passwordConfirmation": args[2],
	})
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}

func (c *CLI) signinCommand(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: dcds-cli signin <username> <password>")
	}

	data, err := c.post("/api/v1/auth/signin", map[string]string{
		"username": args[0],
		"password": args[1],
	})
	if err != nil {
		return err
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return err
	}

	fmt.Println(resp.Token)
	return nil
}

func (c *CLI) usersCommand() error {
	data, err := c.get("/api/v1/auth/users")
	if err != nil {
		return err
	}

	var users []struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.Unmarshal(data, &users); err != nil {
		return err
	}

	for _, u := range users {
		fmt.Printf("%s\t%s\t%s\n", u.ID, u.Username, u.Email)
	}
	return nil
}

func (c *CLI) whoamiCommand() error {
	if c.Token == "" {
		return fmt.Errorf("DCDS_TOKEN is not set")
	}

	data, err := c.get("/api/v1/auth/whoami")
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}
