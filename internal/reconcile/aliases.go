package reconcile

import (
	"catalog-crawler/internal/catalog"
	"strings"

	"github.com/antzucaro/matchr"
)

// minAliasSimilarity is the Jaro-Winkler similarity above which two course names are
// considered to be the same course.
const minAliasSimilarity = 0.9

// AliasSuggestion is a newly crawled course that looks like a renumbered version of
// a course the crawl did not see anymore. Suggestions are only ever shown to a
// curator, they are not applied.
type AliasSuggestion struct {
	Course     catalog.CourseID
	AliasOf    catalog.CourseID
	Similarity float64
}

// SuggestAliases compares the name of every new course with the names of the
// `unseen` courses and suggests the most similar one when it is similar enough.
func SuggestAliases(registry catalog.Registry, newIDs, unseen []catalog.CourseID) []AliasSuggestion {
	var suggestions []AliasSuggestion
	for _, id := range newIDs {
		course, ok := registry.Courses[id]
		if !ok {
			continue
		}
		name := strings.ToLower(course.Name)

		var best AliasSuggestion
		for _, candidateID := range unseen {
			candidate, ok := registry.Courses[candidateID]
			if !ok || candidateID == id {
				continue
			}
			similarity := matchr.JaroWinkler(name, strings.ToLower(candidate.Name), false)
			if similarity > best.Similarity {
				best = AliasSuggestion{
					Course:     id,
					AliasOf:    candidateID,
					Similarity: similarity,
				}
			}
		}
		if best.Similarity >= minAliasSimilarity {
			suggestions = append(suggestions, best)
		}
	}
	return suggestions
}
