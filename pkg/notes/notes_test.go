package notes

import "testing"

func TestEncodeAppendsTokens(t *testing.T) {
	got := Encode("brake pads, walk-in", Meta{
		ProfitTotal:     1250,
		CommissionTotal: 188,
		CommissionBase:  1875,
	})
	want := "brake pads, walk-in profit=12.50 commission=1.88 base=18.75"
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestEncodeEmptyFreeText(t *testing.T) {
	got := Encode("  ", Meta{ProfitTotal: 500, CommissionTotal: 50, CommissionBase: 500})
	want := "profit=5.00 commission=0.50 base=5.00"
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	in := Meta{ProfitTotal: 2000, CommissionTotal: 360, CommissionBase: 3600}
	text, meta, ok := Decode(Encode("oil change", in))
	if !ok {
		t.Fatalf("expected tokens to be recognized")
	}
	if text != "oil change" {
		t.Fatalf("free text = %q, want %q", text, "oil change")
	}
	if meta != in {
		t.Fatalf("meta = %+v, want %+v", meta, in)
	}
}

func TestDecodePlainNotes(t *testing.T) {
	text, _, ok := Decode("customer paid cash, no receipt")
	if ok {
		t.Fatalf("plain notes should not decode as tokens")
	}
	if text != "customer paid cash, no receipt" {
		t.Fatalf("free text mangled: %q", text)
	}
}

func TestDecodeIgnoresUnknownTokens(t *testing.T) {
	text, meta, ok := Decode("ref=ABC123 profit=1.00 commission=0.10 base=1.00")
	if !ok {
		t.Fatalf("expected known tokens to be recognized")
	}
	if text != "ref=ABC123" {
		t.Fatalf("unknown token should remain in free text, got %q", text)
	}
	if meta.ProfitTotal != 100 || meta.CommissionTotal != 10 || meta.CommissionBase != 100 {
		t.Fatalf("meta = %+v", meta)
	}
}
