package render

import "testing"

func TestStyleUpdateDefaultColorIsNoOpinion(t *testing.T) {
	base := DefaultStyle().WithForeground(ColorRed)
	out := base.Update(Style{Foreground: ColorDefault})
	if out.Foreground != ColorRed {
		t.Errorf("expected base foreground to survive an update with no opinion, got %v", out.Foreground)
	}
}

func TestStyleUpdateOverridesForeground(t *testing.T) {
	base := DefaultStyle().WithForeground(ColorRed)
	out := base.Update(Style{Foreground: ColorGreen})
	if out.Foreground != ColorGreen {
		t.Errorf("expected foreground overridden to green, got %v", out.Foreground)
	}
}

func TestStyleUpdateOrsBooleanAttributes(t *testing.T) {
	base := DefaultStyle().WithBold()
	out := base.Update(Style{Underline: true})
	if !out.Bold || !out.Underline {
		t.Errorf("expected both bold and underline set, got %+v", out)
	}
}

func TestRGBReturnsZeroForUnknownColor(t *testing.T) {
	r, g, b := ColorDefault.RGB()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("expected zero RGB for ColorDefault, got (%d,%d,%d)", r, g, b)
	}
}

func TestRGBResolvesKnownColor(t *testing.T) {
	r, g, b := ColorRed.RGB()
	if r == 0 && g == 0 && b == 0 {
		t.Errorf("expected a non-zero RGB value for ColorRed")
	}
}
