// Command seed loads catalog fixtures into a running watchlist-api server.
// The fixture file holds platforms with their titles; everything is posted
// through the public API using an admin token.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"
)

type fixture struct {
	Platforms []platformFixture `json:"platforms"`
}

type platformFixture struct {
	Name    string         `json:"name"`
	About   string         `json:"about"`
	Website string         `json:"website"`
	Titles  []titleFixture `json:"titles"`
}

type titleFixture struct {
	Title     string `json:"title"`
	Storyline string `json:"storyline"`
	Active    *bool  `json:"active"`
}

type createdPlatform struct {
	ID string `json:"id"`
}

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8080", "base URL of the API server")
		data    = flag.String("data", "fixtures.json", "path to fixture file")
		token   = flag.String("token", os.Getenv("SEED_ADMIN_TOKEN"), "admin bearer token")
		timeout = flag.Duration("timeout", 10*time.Second, "per-request timeout")
	)
	flag.Parse()

	if *token == "" {
		log.Fatal("admin token is required (flag -token or SEED_ADMIN_TOKEN)")
	}

	file, err := os.ReadFile(*data)
	if err != nil {
		log.Fatalf("read fixture file: %v", err)
	}

	var payload fixture
	if err := json.Unmarshal(file, &payload); err != nil {
		log.Fatalf("parse fixture file: %v", err)
	}

	client := &http.Client{
		Timeout: *timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   *timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   *timeout,
			ResponseHeaderTimeout: *timeout,
		},
	}

	for _, p := range payload.Platforms {
		platform, err := postJSON[createdPlatform](client, *baseURL+"/platforms", *token, map[string]string{
			"name":    p.Name,
			"about":   p.About,
			"website": p.Website,
		})
		if err != nil {
			log.Fatalf("create platform %q: %v", p.Name, err)
		}
		log.Printf("created platform %q (%s)", p.Name, platform.ID)

		for _, t := range p.Titles {
			active := true
			if t.Active != nil {
				active = *t.Active
			}
			_, err := postJSON[map[string]interface{}](client, *baseURL+"/titles", *token, map[string]interface{}{
				"title":      t.Title,
				"storyline":  t.Storyline,
				"active":     active,
				"platformId": platform.ID,
			})
			if err != nil {
				log.Fatalf("create title %q: %v", t.Title, err)
			}
			log.Printf("created title %q on %q", t.Title, p.Name)
		}
	}
}

func postJSON[T any](client *http.Client, endpoint, token string, body interface{}) (T, error) {
	var result T

	payload, err := json.Marshal(body)
	if err != nil {
		return result, err
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return result, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return result, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("decode response: %w", err)
	}
	return result, nil
}
