package store

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

// CanonicalQuery turns filters into the memo key and query string of a
// listing request. Field names and values are sorted and de-duplicated so
// equal filter sets always produce the same key; fields without values are
// dropped.
func CanonicalQuery(filters models.Filters) string {
	keys := make([]string, 0, len(filters))
	for k, vals := range filters {
		if k != "" && len(vals) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		vals := append([]string(nil), filters[k]...)
		sort.Strings(vals)
		for i, v := range vals {
			if i > 0 && v == vals[i-1] {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

func (s *Store) listPath(kind models.Kind, query string) string {
	p := "/" + kind.Collection() + "/?"
	if query != "" {
		p += query + "&"
	}
	return p + "size=" + strconv.Itoa(s.sizeLimit) + "&summary=true"
}

func resourcePath(kind models.Kind, identifier string) string {
	return "/" + kind.Collection() + "/" + url.PathEscape(identifier)
}

func instancesPath(kind models.Kind, resourceID string) string {
	return resourcePath(kind, resourceID) + "/instances/"
}

func (s *Store) summaryResultsPath(kind models.Kind, resourceID string) string {
	return "/results-summary/?" + kind.IDParam() + "=" + url.QueryEscape(resourceID) + "&size=" + strconv.Itoa(s.sizeLimit)
}

func (s *Store) extendedResultsPath(kind models.Kind, instanceIDs []string) string {
	var b strings.Builder
	b.WriteString("/results-extended/?")
	for _, id := range instanceIDs {
		b.WriteString(kind.InstanceIDParam())
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(id))
		b.WriteByte('&')
	}
	b.WriteString("size=")
	b.WriteString(strconv.Itoa(s.sizeLimit))
	return b.String()
}

func (s *Store) commentsPath(subjectID string) string {
	return "/comments/?about=" + url.QueryEscape(subjectID) + "&size=" + strconv.Itoa(s.sizeLimit)
}
