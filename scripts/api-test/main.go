// Command api-test walks the todo endpoints against a running server.
// It is a smoke test, not a substitute for the package tests.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

func main() {
	baseURL := "http://localhost:7789"

	fmt.Println("=== Todo REST API smoke test ===")

	fmt.Println("\n1. Health check")
	request(baseURL, "GET", "/health", nil)

	fmt.Println("\n2. List todos")
	request(baseURL, "GET", "/todos", nil)

	fmt.Println("\n3. Create a todo")
	body, _ := json.Marshal(map[string]interface{}{
		"text": "buy milk",
		"done": false,
	})
	request(baseURL, "POST", "/todos", body)

	fmt.Println("\n4. Get todo 1")
	request(baseURL, "GET", "/todos/1", nil)

	fmt.Println("\n5. Replace todo 1")
	body, _ = json.Marshal(map[string]interface{}{
		"text": "buy milk",
		"done": true,
	})
	request(baseURL, "PUT", "/todos/1", body)

	fmt.Println("\n6. Allowed methods on the collection")
	request(baseURL, "OPTIONS", "/todos", nil)

	fmt.Println("\n7. Delete todo 1")
	request(baseURL, "DELETE", "/todos/1", nil)

	fmt.Println("\n8. Get deleted todo (expect 404)")
	request(baseURL, "GET", "/todos/1", nil)

	fmt.Println("\n=== Done ===")
}

func request(baseURL, method, endpoint string, data []byte) {
	url := baseURL + endpoint

	var reqBody io.Reader
	if data != nil {
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		fmt.Printf("build request: %v\n", err)
		return
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("request failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	fmt.Printf("%s %s - Status: %d\n", method, endpoint, resp.StatusCode)
	if allow := resp.Header.Get("Allow"); allow != "" {
		fmt.Printf("Allow: %s\n", allow)
	}
	if loc := resp.Header.Get("Location"); loc != "" {
		fmt.Printf("Location: %s\n", loc)
	}
	if len(body) > 0 {
		fmt.Printf("Response: %s\n", string(body))
	}
}
