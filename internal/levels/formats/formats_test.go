package formats

import (
	"reflect"
	"testing"
)

const yamlLevel = `
id: "7"
name: Seven
map:
  - "#####"
  - "#S E#"
  - "#####"
start: [1, 1]
ends: [[3, 1]]
boxes:
  - color: red
    at: [2, 1]
dialogue:
  - at: [1, 1]
    text: hello
`

const tomlLevel = `
id = "7"
name = "Seven"
map = ["#####", "#S E#", "#####"]
start = [1, 1]
ends = [[3, 1]]

[[boxes]]
color = "red"
at = [2, 1]

[[dialogue]]
at = [1, 1]
text = "hello"
`

const jsonLevel = `{"id": "7", "name": "Seven", "map": ["#####", "#S E#", "#####"],
 "start": [1, 1], "ends": [[3, 1]], "boxes": [{"color": "red", "at": [2, 1]}],
 "dialogue": [{"at": [1, 1], "text": "hello"}]}`

func TestFormatsAgree(t *testing.T) {
	expected := Level{
		ID:       "7",
		Name:     "Seven",
		Map:      []string{"#####", "#S E#", "#####"},
		Start:    []int{1, 1},
		Ends:     [][]int{{3, 1}},
		Boxes:    []Box{{Color: "red", At: []int{2, 1}}},
		Dialogue: []Dialogue{{At: []int{1, 1}, Text: "hello"}},
	}

	tests := []struct {
		ext  string
		data string
	}{
		{".yaml", yamlLevel},
		{".toml", tomlLevel},
		{".json", jsonLevel},
	}
	for _, tc := range tests {
		got, err := Parse([]byte(tc.data), tc.ext)
		if err != nil {
			t.Fatalf("Parse(%s): %v", tc.ext, err)
		}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("Parse(%s) = %+v\nexpected %+v", tc.ext, got, expected)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte("map: [unclosed"), ".yaml"); err == nil {
		t.Error("expected yaml error")
	}
	if _, err := Parse([]byte("id = \"1\"\nbogus = 3\n"), ".toml"); err == nil {
		t.Error("expected error for unknown toml key")
	}
	if _, err := Parse([]byte("x"), ".txt"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
