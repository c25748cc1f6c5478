package validate

import "testing"

func TestQuantity(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		want   int
		reason Reason
	}{
		{"plain integer", "1000", 1000, ReasonNone},
		{"surrounding spaces", "  250 ", 250, ReasonNone},
		{"zero", "0", 0, NotPositive},
		{"negative", "-5", 0, NotPositive},
		{"words", "a lot", 0, NotANumber},
		{"decimal", "10.5", 0, NotANumber},
		{"empty", "", 0, NotANumber},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, reason := Quantity(tc.in)
			if reason != tc.reason {
				t.Fatalf("Quantity(%q) reason = %q, want %q", tc.in, reason, tc.reason)
			}
			if got != tc.want {
				t.Errorf("Quantity(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestLink(t *testing.T) {
	instagram := []string{"instagram.com", "instagr.am"}

	t.Run("accepts matching platform link", func(t *testing.T) {
		got, reason := Link("https://instagram.com/foo", instagram)
		if !reason.OK() {
			t.Fatalf("unexpected reason %q", reason)
		}
		if got != "https://instagram.com/foo" {
			t.Errorf("link = %q", got)
		}
	})

	t.Run("accepts subdomain via substring match", func(t *testing.T) {
		if _, reason := Link("https://www.Instagram.com/p/abc", instagram); !reason.OK() {
			t.Fatalf("unexpected reason %q", reason)
		}
	})

	t.Run("rejects other platforms", func(t *testing.T) {
		if _, reason := Link("https://youtube.com/watch?v=1", instagram); reason != DomainMismatch {
			t.Fatalf("reason = %q, want DOMAIN_MISMATCH", reason)
		}
	})

	t.Run("rejects non-http schemes", func(t *testing.T) {
		if _, reason := Link("ftp://instagram.com/foo", instagram); reason != BadURLFormat {
			t.Fatalf("reason = %q, want BAD_URL_FORMAT", reason)
		}
	})

	t.Run("rejects bare text", func(t *testing.T) {
		if _, reason := Link("my profile", instagram); reason != BadURLFormat {
			t.Fatalf("reason = %q, want BAD_URL_FORMAT", reason)
		}
	})

	t.Run("rejects scheme without host", func(t *testing.T) {
		if _, reason := Link("https://", instagram); reason != BadURLFormat {
			t.Fatalf("reason = %q, want BAD_URL_FORMAT", reason)
		}
	})
}

func TestEmail(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		want   string
		reason Reason
	}{
		{"simple", "user@example.com", "user@example.com", ReasonNone},
		{"normalizes case and spaces", " User @Example.COM ", "user@example.com", ReasonNone},
		{"missing at", "user.example.com", "", BadEmailFormat},
		{"missing dot", "user@examplecom", "", BadEmailFormat},
		{"empty local part", "@example.com", "", BadEmailFormat},
		{"trailing at", "user@", "", BadEmailFormat},
		{"double at", "a@b@example.com", "", BadEmailFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, reason := Email(tc.in)
			if reason != tc.reason {
				t.Fatalf("Email(%q) reason = %q, want %q", tc.in, reason, tc.reason)
			}
			if got != tc.want {
				t.Errorf("Email(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestShortName(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		reason Reason
	}{
		{"two characters", "Jo", ReasonNone},
		{"six characters", "Joanna", ReasonNone},
		{"multibyte runes count once", "जॉन", ReasonNone},
		{"one character", "J", NameLength},
		{"seven characters", "Jofffff", NameLength},
		{"only spaces", "   ", NameLength},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, reason := ShortName(tc.in); reason != tc.reason {
				t.Fatalf("ShortName(%q) reason = %q, want %q", tc.in, reason, tc.reason)
			}
		})
	}
}
