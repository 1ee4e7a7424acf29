package server

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestErrorFrameOmitsState(t *testing.T) {
	data, err := json.Marshal(ServerMessage{
		Type:  "error",
		Error: &ErrorView{Code: "illegal_action", Message: "not your turn"},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if bytes.Contains(data, []byte(`"state"`)) {
		t.Fatalf("error frame carries a state view: %s", data)
	}
	if !bytes.Contains(data, []byte(`"error"`)) {
		t.Fatalf("error frame missing error payload: %s", data)
	}
}
