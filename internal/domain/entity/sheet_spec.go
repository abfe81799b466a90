package entity

import (
	"encoding/json"
	"strings"
)

// SheetSpec is the ad-hoc specification of a loose-sheet order, stored as
// JSON in a job's type_spec_snapshot cell. The UI historically wrote some
// fields as numbers and finishing as either a string or a tag list, so
// the flexible types below accept both shapes.
type SheetSpec struct {
	Size          string     `json:"size,omitempty"`
	PaperName     string     `json:"paper_name,omitempty"`
	PaperWeight   FlexString `json:"paper_weight,omitempty"`
	PaperColor    string     `json:"paper_color,omitempty"`
	PrintSide     string     `json:"print_side,omitempty"` // 단면 | 양면; blank means 양면
	PrintColor    string     `json:"print_color,omitempty"`
	Finishing     StringList `json:"finishing,omitempty"`
	Cutting       string     `json:"cutting,omitempty"`
	KindsCount    FlexString `json:"kinds_count,omitempty"`
	SheetsPerKind FlexString `json:"sheets_per_kind,omitempty"`
	ExtraRequest  string     `json:"extra_request,omitempty"`
	ReceiveMethod string     `json:"receive_method,omitempty"`
}

// FlexString decodes a JSON string, number or null into a string.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// StringList decodes a JSON string, string array or null.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*l = nil
		return nil
	}
	if len(s) > 0 && s[0] == '[' {
		var vs []string
		if err := json.Unmarshal(b, &vs); err != nil {
			return err
		}
		*l = vs
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == "" {
		*l = nil
		return nil
	}
	*l = []string{v}
	return nil
}

// Joined flattens the list for keyword matching and display.
func (l StringList) Joined() string { return strings.Join(l, ", ") }
