package compose

import (
	"net/url"
	"strings"
	"testing"
)

func TestMailtoURL(t *testing.T) {
	l := Letter{Subject: "Hello & welcome", Body: "Line 1\nLine 2 + more"}
	got := MailtoURL("jane.doe@parl.gc.ca", l)

	want := "mailto:jane.doe@parl.gc.ca?subject=Hello%20%26%20welcome&body=Line%201%0ALine%202%20%2B%20more"
	if got != want {
		t.Fatalf("unexpected mailto:\n got %s\nwant %s", got, want)
	}
	if strings.Contains(got, "+") {
		t.Fatalf("spaces must not be encoded as '+'")
	}
}

func TestWebmailURLsRoundTrip(t *testing.T) {
	l := Letter{Subject: "Transit", Body: "Dear Jane,\n\nHi."}
	links := LinksFor("jane.doe@parl.gc.ca", l)

	gmail, err := url.Parse(links.Gmail)
	if err != nil {
		t.Fatalf("invalid gmail url: %v", err)
	}
	q := gmail.Query()
	if q.Get("to") != "jane.doe@parl.gc.ca" || q.Get("su") != "Transit" || q.Get("body") != l.Body || q.Get("view") != "cm" {
		t.Fatalf("unexpected gmail query %v", q)
	}

	outlook, err := url.Parse(links.Outlook)
	if err != nil {
		t.Fatalf("invalid outlook url: %v", err)
	}
	q = outlook.Query()
	if q.Get("to") != "jane.doe@parl.gc.ca" || q.Get("subject") != "Transit" || q.Get("body") != l.Body {
		t.Fatalf("unexpected outlook query %v", q)
	}

	if !strings.HasPrefix(links.Mailto, "mailto:jane.doe@parl.gc.ca?") {
		t.Fatalf("unexpected mailto %q", links.Mailto)
	}
}
