package symbolic_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/njchilds90/gosweep/symbolic"
)

func TestJSON_RoundTrip(t *testing.T) {
	u, R := symbolic.S("u"), symbolic.Pos("R")
	e := symbolic.AddOf(
		symbolic.MulOf(R, symbolic.CosOf(u)),
		symbolic.SqrtOf(symbolic.AddOf(u, symbolic.F(1, 3))),
		symbolic.Pi(),
	)
	s, err := symbolic.ToJSON(e)
	if err != nil {
		t.Fatal(err)
	}
	back, err := symbolic.ParseJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	if back != e {
		t.Errorf("want %s, got %s", e, back)
	}
}

func TestJSON_KeepsDomain(t *testing.T) {
	s, err := symbolic.ToJSON(symbolic.Pos("r"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s, `"domain":"positive"`) {
		t.Errorf("want domain in %s", s)
	}
	back, err := symbolic.ParseJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	if !symbolic.ProvablyPositive(back) {
		t.Error("positive domain lost")
	}
}

func TestFromJSON_Errors(t *testing.T) {
	cases := []string{
		`{}`,
		`{"type":"warp"}`,
		`{"type":"num","value":"abc"}`,
		`{"type":"func","name":"gamma","arg":{"type":"sym","name":"x"}}`,
		`{"type":"sym","name":"x","domain":"imaginary"}`,
		`{"type":"add","terms":[1]}`,
	}
	for _, c := range cases {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(c), &data); err != nil {
			t.Fatal(err)
		}
		if _, err := symbolic.FromJSON(data); err == nil {
			t.Errorf("%s: want error", c)
		}
	}
}
