package util

import "testing"

const wantID = "dQw4w9WgXcQ"

func TestExtractVideoIDSupportedForms(t *testing.T) {
	// Every supported form of the same video must yield the same ID.
	urls := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"http://youtube.com/watch?v=dQw4w9WgXcQ",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
		"https://music.youtube.com/watch?v=dQw4w9WgXcQ&list=RD123",
		"youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?si=abcdef",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
		"https://www.youtube.com/live/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?list=PLx&v=dQw4w9WgXcQ",
	}
	for _, u := range urls {
		id, ok := ExtractVideoID(u)
		if !ok {
			t.Errorf("ExtractVideoID(%q) not recognized", u)
			continue
		}
		if id != wantID {
			t.Errorf("ExtractVideoID(%q) = %q, want %q", u, id, wantID)
		}
	}
}

func TestExtractVideoIDRejects(t *testing.T) {
	urls := []string{
		"",
		"not a url",
		"https://vimeo.com/12345",
		"https://www.youtube.com/",
		"https://www.youtube.com/watch",
		"https://www.youtube.com/watch?v=short",                 // 5 chars
		"https://www.youtube.com/watch?v=dQw4w9WgXcQtoolong",    // 18 chars
		"https://www.youtube.com/watch?v=dQw4w9WgXc!",           // bad alphabet
		"https://www.youtube.com/playlist?list=PLabc",           // no video
		"https://www.youtube.com/channel/UC123456789012345",     // channel page
		"ftp://www.youtube.com/watch?v=dQw4w9WgXcQ",             // bad scheme
		"https://notyoutube.com/watch?v=dQw4w9WgXcQ",            // lookalike host
		"https://youtube.com.evil.example/watch?v=dQw4w9WgXcQ",  // host suffix attack
	}
	for _, u := range urls {
		if id, ok := ExtractVideoID(u); ok {
			t.Errorf("ExtractVideoID(%q) = %q, want rejection", u, id)
		}
	}
}

func TestValidateURLCanonicalizes(t *testing.T) {
	ref, ok := ValidateURL("https://youtu.be/dQw4w9WgXcQ")
	if !ok {
		t.Fatal("ValidateURL() rejected a valid short link")
	}
	if ref.ID != wantID {
		t.Errorf("ID = %q, want %q", ref.ID, wantID)
	}
	want := "https://www.youtube.com/watch?v=" + wantID
	if ref.URL != want {
		t.Errorf("URL = %q, want %q", ref.URL, want)
	}
}
