package messages

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

type Type string

const (
	REGISTER Type = "REGISTER"
	ACK      Type = "ACK"
	JOB      Type = "JOB"
	RESULT   Type = "RESULT"
)

type Status string

const (
	StatusOK       Status = "OK"
	StatusError    Status = "ERROR"
	StatusFound    Status = "FOUND"
	StatusNotFound Status = "NOT_FOUND"
)

// ProtocolVersion is sent in REGISTER and checked by the controller.
const ProtocolVersion = "v2"

type RegisterMsg struct {
	Type    Type   `json:"type"`
	Worker  string `json:"worker"`
	Version string `json:"version"`
	Cores   int    `json:"cores"`
}

type AckMsg struct {
	Type   Type   `json:"type"`
	Status Status `json:"status"` // "OK" or "ERROR"
	Error  string `json:"error,omitempty"`
}

type JobMsg struct {
	Type     Type      `json:"type"`
	JobID    uuid.UUID `json:"job_id"`
	Username string    `json:"username"`
	FullHash string    `json:"full_hash"`
	Alg      string    `json:"alg"`      // see verify.Alg*
	Budget   uint      `json:"budget"`   // exclusive substitution-cost ceiling
	Parallel int       `json:"parallel"` // worker-side goroutines, 0 = worker's choice
	Words    []string  `json:"words"`
}

type ResultMsg struct {
	Type            Type      `json:"type"`
	JobID           uuid.UUID `json:"job_id"`
	Status          Status    `json:"status"` // "FOUND"|"NOT_FOUND"|"ERROR"
	Password        string    `json:"password,omitempty"`
	Word            string    `json:"word,omitempty"`
	Tried           int64     `json:"tried"`
	Error           string    `json:"error,omitempty"`
	WorkerComputeNs int64     `json:"worker_compute_ns"`
}

// NewJob stamps a fresh job ID.
func NewJob(username, fullHash, alg string, budget uint, parallel int, words []string) JobMsg {
	return JobMsg{
		Type:     JOB,
		JobID:    uuid.New(),
		Username: username,
		FullHash: fullHash,
		Alg:      alg,
		Budget:   budget,
		Parallel: parallel,
		Words:    words,
	}
}

// --- Simple NDJSON helpers (one JSON object per line) ---
func Send(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// RecvLine reads one line and unmarshals into out.
func RecvLine(r *bufio.Reader, out any) error {
	line, err := r.ReadString('\n')
	if err != nil {
		return err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fmt.Errorf("empty message")
	}
	return json.Unmarshal([]byte(line), out)
}
