package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type MetricsSummary struct {
	TotalMonthly       float64           `json:"total_monthly"`
	TotalAnnual        float64           `json:"total_annual"`
	TotalSubscriptions int               `json:"total_subscriptions"`
	Categories         CategoryBreakdown `json:"categories"`
}

type CategoryAmount struct {
	Name   string
	Amount float64
}

// CategoryBreakdown is encoded as a JSON object keyed by category name. Key
// order on the wire follows slice order, and decoding keeps the order the
// server wrote.
type CategoryBreakdown []CategoryAmount

func (c CategoryBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ca := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ca.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(ca.Amount)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *CategoryBreakdown) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categories: expected object, got %v", tok)
	}

	out := CategoryBreakdown{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("categories: expected key, got %v", tok)
		}
		var amount float64
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("categories[%q]: %w", name, err)
		}
		out = append(out, CategoryAmount{Name: name, Amount: amount})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}
