// Command benchmark load-tests the resolve endpoint end to end: it builds
// the server, seeds a throwaway fallback configuration, and drives it with
// vegeta.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const appPort = 8081

var benchState = `{
  "isEnabled": true,
  "virtualModels": [
    {
      "name": "bench-model",
      "isEnabled": true,
      "fallbackEntries": [
        {"provider": "claude", "modelId": "claude-sonnet-4-5", "priority": 0},
        {"provider": "gemini", "modelId": "gemini-2.5-pro", "priority": 1},
        {"provider": "ollama", "modelId": "qwen3:8b", "priority": 2}
      ]
    }
  ]
}
`

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Duration of the test")
	rate := flag.Int("rate", 200, "Requests per second")
	noAudit := flag.Bool("noaudit", false, "Disable the audit sink to measure the pure resolve path")
	flag.Parse()

	fmt.Println("Building application...")
	buildCmd := exec.Command("go", "build", "-o", "bin/server", "./cmd/server")
	buildCmd.Stdout = os.Stdout
	buildCmd.Stderr = os.Stderr
	if err := buildCmd.Run(); err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	statePath := "bench_state.json"
	if err := os.WriteFile(statePath, []byte(benchState), 0644); err != nil {
		log.Fatalf("Failed to write state file: %v", err)
	}
	defer os.Remove(statePath)

	fmt.Println("Starting application...")
	cmd := exec.Command("./bin/server")
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("SERVER_PORT=%d", appPort),
		fmt.Sprintf("STATE_PATH=%s", statePath),
		"AUDIT_DSN=file:bench_audit.db?cache=shared&mode=rwc&_journal_mode=WAL&_busy_timeout=5000",
		"RATE_LIMIT_REQUESTS_PER_SECOND=1000000",
		"RATE_LIMIT_BURST=1000000",
		"LOG_LEVEL=error",
	)
	if *noAudit {
		cmd.Env = append(cmd.Env, "AUDIT_ENABLED=false")
	}

	logFile, _ := os.Create("bench_server.log")
	defer logFile.Close()
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	}()

	waitForApp(fmt.Sprintf("http://localhost:%d/health", appPort))

	fmt.Printf("Running resolve benchmark: %s duration, %d req/s\n", *duration, *rate)

	body := []byte(`{"model": "bench-model"}`)
	targeter := func(t *vegeta.Target) error {
		t.Method = "POST"
		t.URL = fmt.Sprintf("http://localhost:%d/v1/resolve", appPort)
		t.Body = body
		t.Header = http.Header{
			"Content-Type":      []string{"application/json"},
			"X-Benchmark-Start": []string{strconv.FormatInt(time.Now().UnixNano(), 10)},
		}
		return nil
	}

	attacker := vegeta.NewAttacker(vegeta.KeepAlive(true))
	var metrics vegeta.Metrics

	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: *rate, Per: time.Second}, *duration, "Resolve") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("--------------------------------------------------")
	fmt.Println("99th percentile: ", metrics.Latencies.P99)
	fmt.Println("Mean:            ", metrics.Latencies.Mean)
	fmt.Println("Max:             ", metrics.Latencies.Max)
	fmt.Printf("Success:         %.2f%%\n", metrics.Success*100)
	fmt.Printf("Throughput:      %.2f req/s\n", metrics.Throughput)
	fmt.Println("--------------------------------------------------")

	if len(metrics.Errors) > 0 {
		fmt.Println("Error Set (first 5 unique):")
		uniqueErrors := make(map[string]bool)
		count := 0
		for _, msg := range metrics.Errors {
			if !uniqueErrors[msg] && count < 5 {
				fmt.Println(msg)
				uniqueErrors[msg] = true
				count++
			}
		}
	}

	os.Remove("bench_audit.db")
}

func waitForApp(url string) {
	for i := 0; i < 20; i++ {
		resp, err := http.Get(url)
		if err == nil && resp.StatusCode == 200 {
			return
		}
		time.Sleep(500 * time.Millisecond)
	}
	log.Fatal("App timed out")
}
