// Manual smoke test: posts a synthetic test-end event at a local instance.
//
//	go run ./sample/send-test-event -email a@x.com -score 0.92
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
)

func main() {
	base := flag.String("url", "http://localhost:8080", "service base URL")
	token := flag.String("token", "dev-secret", "webhook token")
	email := flag.String("email", "a@x.com", "lead email")
	score := flag.Float64("score", 0.92, "raw lesson score (fraction or percent)")
	course := flag.String("course", "C1", "course id")
	flag.Parse()

	payload := map[string]interface{}{
		"event": "test-end",
		"user": map[string]interface{}{
			"email": *email,
		},
		"lesson": map[string]interface{}{
			"id":    "L-42",
			"score": *score,
		},
		"course": map[string]interface{}{
			"id": *course,
		},
	}

	body, _ := json.Marshal(payload)
	url := fmt.Sprintf("%s/skillspace-webhook?token=%s", *base, *token)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Println("request failed:", err)
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("%d %s\n", resp.StatusCode, string(respBody))
}
