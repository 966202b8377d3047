package transformer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/artfolio/artwork-indexer/internal/domain"
)

// AttributeSources carries the up-to-four raw trait bags a provider record may
// expose. Lists keep their provider order; maps are emitted in sorted key
// order so merging stays deterministic.
type AttributeSources struct {
	Attributes []domain.Attribute
	Traits     []domain.Attribute
	Properties map[string]interface{}
	Features   map[string]interface{}
}

// MergeAttributes flattens all sources into one list of {trait_type, value},
// stringifying values and deduplicating case-insensitively by the
// (trait_type, value) pair while preserving first-seen order.
func MergeAttributes(sources AttributeSources) []domain.Attribute {
	var merged []domain.Attribute
	seen := make(map[string]bool)

	appendOne := func(traitType, value string) {
		if traitType == "" && value == "" {
			return
		}
		key := strings.ToLower(traitType) + "\x00" + strings.ToLower(value)
		if seen[key] {
			return
		}
		seen[key] = true
		merged = append(merged, domain.Attribute{TraitType: traitType, Value: value})
	}

	for _, a := range sources.Attributes {
		appendOne(a.TraitType, a.Value)
	}
	for _, a := range sources.Traits {
		appendOne(a.TraitType, a.Value)
	}
	for _, key := range sortedKeys(sources.Properties) {
		appendOne(key, StringifyAttributeValue(sources.Properties[key]))
	}
	for _, key := range sortedKeys(sources.Features) {
		appendOne(key, StringifyAttributeValue(sources.Features[key]))
	}

	return merged
}

// StringifyAttributeValue renders a raw attribute value as a string. Numbers
// keep their shortest representation; nested structures fall back to fmt.
func StringifyAttributeValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys(m map[string]interface{}) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
