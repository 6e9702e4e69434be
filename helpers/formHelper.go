package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/models"
)

// Top-level form fields that clients may send as a JSON document.
var jsonFormFields = map[string]bool{
	"customer":     true,
	"order":        true,
	"dates":        true,
	"particulars":  true,
	"measurements": true,
	"totals":       true,
	"orderTakenBy": true,
	"assignedTo":   true,
}

var particularImageKey = regexp.MustCompile(`^particulars\[(\d+)\]\[images\](?:\[(\d*)\])?$`)

// Form objects whose numeric keys are positions and must not be packed.
var positionalFields = map[string]bool{
	"SL": true,
}

// NestForm turns bracketed form keys such as "customer[name]" and
// "particulars[0][price]" into a JSON document. Objects whose keys are all
// numeric become arrays ordered by key, except positional fields such as SL
// which stay keyed.
func NestForm(values map[string][]string) ([]byte, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := map[string]interface{}{}
	for _, key := range keys {
		vals := values[key]
		if len(vals) == 0 {
			continue
		}
		value := vals[len(vals)-1]
		path := splitFormKey(key)

		if len(path) == 1 && jsonFormFields[path[0]] {
			var decoded interface{}
			if err := json.Unmarshal([]byte(value), &decoded); err != nil {
				return nil, apperrors.NewValidation(path[0], fmt.Sprintf("Invalid JSON in field '%s'", path[0]))
			}
			root[path[0]] = decoded
			continue
		}
		assignFormValue(root, path, value)
	}

	out, err := json.Marshal(listify(root))
	if err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}
	return out, nil
}

// splitFormKey splits "a[b][c]" into [a b c]. A key without well formed
// brackets is returned whole.
func splitFormKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return []string{key}
	}
	path := []string{key[:open]}
	rest := key[open:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			return []string{key}
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return []string{key}
		}
		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}
	return path
}

func assignFormValue(node map[string]interface{}, path []string, value string) {
	for i, seg := range path {
		if seg == "" {
			seg = strconv.Itoa(len(node))
		}
		if i == len(path)-1 {
			node[seg] = value
			return
		}
		child, ok := node[seg].(map[string]interface{})
		if !ok {
			child = map[string]interface{}{}
			if list, isList := node[seg].([]interface{}); isList {
				for j, v := range list {
					child[strconv.Itoa(j)] = v
				}
			}
			node[seg] = child
		}
		node = child
	}
}

func listify(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, child := range t {
			if keyed, ok := child.(map[string]interface{}); ok && positionalFields[k] {
				for pos, entry := range keyed {
					keyed[pos] = listify(entry)
				}
				continue
			}
			t[k] = listify(child)
		}
		indexes, ok := numericKeys(t)
		if !ok {
			return t
		}
		list := make([]interface{}, 0, len(indexes))
		for _, idx := range indexes {
			list = append(list, t[strconv.Itoa(idx)])
		}
		return list
	case []interface{}:
		for i, child := range t {
			t[i] = listify(child)
		}
		return t
	}
	return v
}

func numericKeys(m map[string]interface{}) ([]int, bool) {
	if len(m) == 0 {
		return nil, false
	}
	indexes := make([]int, 0, len(m))
	for k := range m {
		idx, err := strconv.Atoi(k)
		if err != nil || idx < 0 || strconv.Itoa(idx) != k {
			return nil, false
		}
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	return indexes, true
}

// ParticularImages collects the files posted as particulars[i][images][j],
// ordered by j and keyed by the particular's position in the packed
// particulars list that NestForm builds from values. Files for an index with
// no particular fields are dropped.
func ParticularImages(values map[string][]string, files map[string][]*multipart.FileHeader) models.ParticularFiles {
	positions := particularPositions(values)

	type entry struct {
		particular int
		order      int
		headers    []*multipart.FileHeader
	}
	var entries []entry
	for key, headers := range files {
		m := particularImageKey.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		raw, err := strconv.Atoi(m[1])
		if err != nil || strconv.Itoa(raw) != m[1] {
			continue
		}
		particular := raw
		if positions != nil {
			pos, ok := positions[raw]
			if !ok {
				continue
			}
			particular = pos
		}
		order := -1
		if m[2] != "" {
			order, _ = strconv.Atoi(m[2])
		}
		entries = append(entries, entry{particular: particular, order: order, headers: headers})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].particular != entries[j].particular {
			return entries[i].particular < entries[j].particular
		}
		return entries[i].order < entries[j].order
	})

	out := models.ParticularFiles{}
	for _, e := range entries {
		for _, fh := range e.headers {
			out[e.particular] = append(out[e.particular], FileAttachment(fh))
		}
	}
	return out
}

// particularPositions maps each bracketed particulars[N] index to its place
// in the packed list. It returns nil when particulars came as a JSON field,
// where file indexes already are list positions.
func particularPositions(values map[string][]string) map[int]int {
	if _, ok := values["particulars"]; ok {
		return nil
	}
	seen := map[int]bool{}
	for key := range values {
		path := splitFormKey(key)
		if len(path) < 3 || path[0] != "particulars" {
			continue
		}
		idx, err := strconv.Atoi(path[1])
		if err != nil || idx < 0 || strconv.Itoa(idx) != path[1] {
			continue
		}
		seen[idx] = true
	}
	indexes := make([]int, 0, len(seen))
	for idx := range seen {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	positions := make(map[int]int, len(indexes))
	for pos, idx := range indexes {
		positions[idx] = pos
	}
	return positions
}

// FileAttachment wraps an uploaded file header.
func FileAttachment(fh *multipart.FileHeader) models.Attachment {
	return models.Attachment{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}
