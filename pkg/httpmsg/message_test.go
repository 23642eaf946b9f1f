package httpmsg

import "testing"

func TestMethodFromStringCaseInsensitive(t *testing.T) {
	cases := map[string]Method{
		"get":  Get,
		"GET":  Get,
		"Head": Head,
		"POST": Post,
	}
	for input, want := range cases {
		got, ok := MethodFromString(input)
		if !ok || got != want {
			t.Errorf("MethodFromString(%q) = %v, %v; want %v, true", input, got, ok, want)
		}
	}
}

func TestMethodFromStringRejectsUnknown(t *testing.T) {
	if _, ok := MethodFromString("PUT"); ok {
		t.Error("PUT should not be recognized")
	}
}

func TestHeaderListGetCaseInsensitive(t *testing.T) {
	var h HeaderList
	h.Add("Content-Type", "text/html")

	v, ok := h.Get("content-type")
	if !ok || v != "text/html" {
		t.Errorf("Get(content-type) = %q, %v", v, ok)
	}
}

func TestHeaderListGetReturnsFirst(t *testing.T) {
	var h HeaderList
	h.Add("X-Test", "first")
	h.Add("X-Test", "second")

	v, _ := h.Get("X-Test")
	if v != "first" {
		t.Errorf("Get should return first match in insertion order, got %q", v)
	}
}

func TestHeaderListPreservesOrder(t *testing.T) {
	var h HeaderList
	h.Add("B", "1")
	h.Add("A", "2")
	h.Add("B", "3")

	want := []string{"B", "A", "B"}
	for i, header := range h {
		if header.Name != want[i] {
			t.Errorf("header[%d].Name = %q, want %q", i, header.Name, want[i])
		}
	}
}

func TestClearResetsToZeroValue(t *testing.T) {
	req := &Request{Method: Post, Domain: "example.com", Path: "x"}
	req.Headers.Add("A", "B")
	req.Clear()

	if req.Method != Get || req.Domain != "" || req.Path != "" || req.Headers != nil {
		t.Errorf("Clear did not reset to zero value: %+v", req)
	}
}
