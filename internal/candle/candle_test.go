package candle

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// go test -v --run TestFromText
func TestFromText(t *testing.T) {
	c, err := FromText(1700000000000, "100.5", "101.0", "99.8", "100.9", "12.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !c.Time.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("unexpected time: %v", c.Time)
	}
	if c.Time.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", c.Time.Location())
	}
	if c.Open.String() != "100.5" || c.High.String() != "101" || c.Low.String() != "99.8" ||
		c.Close.String() != "100.9" || c.Volume.String() != "12.3" {
		t.Errorf("unexpected values: %+v", c)
	}
	if !c.Bullish() {
		t.Error("expected bullish candle")
	}
}

// go test -v --run TestFromTextInvalid
func TestFromTextInvalid(t *testing.T) {
	_, err := FromText(1, "100", "abc", "99", "100", "1")
	if err == nil {
		t.Fatal("expected error for non-numeric high")
	}
	if !strings.Contains(err.Error(), "high") {
		t.Errorf("error should name the field: %v", err)
	}
}

// go test -v --run TestCandleJSON
func TestCandleJSON(t *testing.T) {
	c, err := FromText(1700000000000, "100.5", "101.0", "99.8", "100.9", "12.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"t":"2023-11-14T22:13:20Z","o":100.5,"h":101,"l":99.8,"c":100.9,"v":12.3}`
	if string(raw) != want {
		t.Errorf("unexpected encoding:\n got %s\nwant %s", raw, want)
	}

	var back Candle
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.Equal(c) {
		t.Errorf("decoded candle differs: %+v vs %+v", back, c)
	}
}

// go test -v --run TestCandleUnmarshalMissingField
func TestCandleUnmarshalMissingField(t *testing.T) {
	var c Candle
	err := json.Unmarshal([]byte(`{"t":"2023-11-14T22:13:20Z","o":1,"h":2,"l":0.5,"c":1.5}`), &c)
	if err == nil {
		t.Fatal("expected error for missing volume")
	}
}
