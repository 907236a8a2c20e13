package translator

import "testing"

func TestTranslateBatch_KnownPhraseTranslatesToHindi(t *testing.T) {
	tr := New()

	out, err := tr.TranslateBatch([]string{"Insufficient funds."}, "hi")
	if err != nil {
		t.Fatalf("TranslateBatch: %v", err)
	}
	if out[0] != "अपर्याप्त धनराशि।" {
		t.Errorf("TranslateBatch()[0] = %q, want the Hindi phrase", out[0])
	}
}

func TestTranslateBatch_UnknownPhrasePassesThrough(t *testing.T) {
	tr := New()

	out, err := tr.TranslateBatch([]string{"Some unseen phrase."}, "hi")
	if err != nil {
		t.Fatalf("TranslateBatch: %v", err)
	}
	if out[0] != "Some unseen phrase." {
		t.Errorf("TranslateBatch()[0] = %q, want the original phrase unchanged", out[0])
	}
}

func TestTranslateBatch_EnglishTargetIsIdentity(t *testing.T) {
	tr := New()

	out, err := tr.TranslateBatch([]string{"Insufficient funds."}, "en")
	if err != nil {
		t.Fatalf("TranslateBatch: %v", err)
	}
	if out[0] != "Insufficient funds." {
		t.Errorf("TranslateBatch()[0] = %q, want unchanged English", out[0])
	}
}
