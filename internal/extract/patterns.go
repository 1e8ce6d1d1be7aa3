package extract

import (
	"catalog-crawler/internal/catalog"
	"catalog-crawler/pkg/htmlutil"
	"catalog-crawler/pkg/textutil"
	"fmt"
	"strings"
)

const coreGroupName = "Core"

// list items that give instructions instead of naming a course, they may still
// mention a course as an example so they are discarded before recognition.
var instructionalPhrases = textutil.NewPhraseMatcher(
	"in excess",
	"any core course",
	"any course",
	"any other",
	"course not used",
)

func pickGroupName(n int) string {
	return fmt.Sprintf("Pick %d", n)
}

// groupPattern is a single authoring convention for a core requirements section.
type groupPattern struct {
	name  string
	match func(r Recognizer, blocks []block) ([]catalog.RequirementGroup, bool)
}

// corePatterns are tried in order, the first one that matches wins.
var corePatterns = []groupPattern{
	{name: "direct", match: matchDirect},
	{name: "inline-pick", match: matchInlinePick},
	{name: "sequential", match: matchSequential},
	{name: "or-joined", match: matchOrJoined},
	{name: "flat", match: matchFlat},
}

func isInstructional(item htmlutil.ListItem) bool {
	return instructionalPhrases.Match(item.Text)
}

// collectCourses appends the course of every item to `ids`, skipping items without
// a course and instructional items.
func collectCourses(r Recognizer, ids []catalog.CourseID, items []htmlutil.ListItem) []catalog.CourseID {
	for _, item := range items {
		if isInstructional(item) {
			continue
		}
		id, ok := r.Identifier(item.Text)
		if !ok {
			continue
		}
		ids = catalog.AppendUnique(ids, id)
	}
	return ids
}

func coursesOfLists(r Recognizer, blocks []block) []catalog.CourseID {
	ids := []catalog.CourseID{}
	for _, b := range blocks {
		if b.isList() {
			ids = collectCourses(r, ids, b.items)
		}
	}
	return ids
}

// a heading directly followed by a single list, every course is required
func matchDirect(r Recognizer, blocks []block) ([]catalog.RequirementGroup, bool) {
	if countLists(blocks) != 1 || !blocks[0].isList() {
		return nil, false
	}
	for _, b := range blocks {
		if !b.isList() {
			if hasPickLanguage(b.text) {
				return nil, false
			}
			continue
		}
		for _, item := range b.items {
			if hasPickLanguage(item.Text) {
				return nil, false
			}
		}
	}
	members := coursesOfLists(r, blocks)
	if len(members) == 0 {
		return nil, false
	}
	return []catalog.RequirementGroup{{
		Name:    coreGroupName,
		Pick:    len(members),
		Courses: members,
	}}, true
}

// "Pick two of the following:" directly followed by a single list
func matchInlinePick(r Recognizer, blocks []block) ([]catalog.RequirementGroup, bool) {
	if countLists(blocks) != 1 {
		return nil, false
	}
	for i, b := range blocks {
		if !b.isList() {
			continue
		}
		if i == 0 || blocks[i-1].isList() {
			return nil, false
		}
		pick, ok := ParsePickCount(blocks[i-1].text)
		if !ok {
			return nil, false
		}
		members := collectCourses(r, []catalog.CourseID{}, b.items)
		if len(members) == 0 {
			return nil, false
		}
		return []catalog.RequirementGroup{{
			Name:    pickGroupName(pick),
			Pick:    pick,
			Courses: members,
		}}, true
	}
	return nil, false
}

// lists of alternatives followed by one or more "And, pick N" markers, each marker
// owning the lists up to the next marker.
func matchSequential(r Recognizer, blocks []block) ([]catalog.RequirementGroup, bool) {
	var markers []int
	for i, b := range blocks {
		if !b.isList() && isAndPickMarker(b.text) {
			markers = append(markers, i)
		}
	}
	if len(markers) == 0 {
		return nil, false
	}

	var groups []catalog.RequirementGroup

	// the lists before the first marker form one "Pick 1" group, when there are none
	// the group is left out.
	if members := coursesOfLists(r, blocks[:markers[0]]); len(members) > 0 {
		groups = append(groups, catalog.RequirementGroup{
			Name:    pickGroupName(1),
			Pick:    1,
			Courses: members,
		})
	}

	for k, start := range markers {
		end := len(blocks)
		if k+1 < len(markers) {
			end = markers[k+1]
		}
		members := coursesOfLists(r, blocks[start+1:end])
		if len(members) == 0 {
			continue
		}
		pick, ok := ParsePickCount(blocks[start].text)
		if !ok {
			pick = 1
		}
		groups = append(groups, catalog.RequirementGroup{
			Name:    pickGroupName(pick),
			Pick:    pick,
			Courses: members,
		})
	}

	return groups, len(groups) > 0
}

func isOrSeparator(text string) bool {
	text = strings.Trim(strings.ToLower(text), " .,:;-()")
	return text == "or"
}

// two or more lists separated by a paragraph that only says "or"
func matchOrJoined(r Recognizer, blocks []block) ([]catalog.RequirementGroup, bool) {
	if countLists(blocks) < 2 {
		return nil, false
	}
	joined := false
	for i := 1; i+1 < len(blocks); i++ {
		if !blocks[i].isList() && isOrSeparator(blocks[i].text) &&
			blocks[i-1].isList() && blocks[i+1].isList() {
			joined = true
			break
		}
	}
	if !joined {
		return nil, false
	}
	members := coursesOfLists(r, blocks)
	if len(members) == 0 {
		return nil, false
	}
	return []catalog.RequirementGroup{{
		Name:    pickGroupName(1),
		Pick:    1,
		Courses: members,
	}}, true
}

// every course in every list, the pick count comes from the fragment's pick phrases
// when they all agree and otherwise every course is required.
func matchFlat(r Recognizer, blocks []block) ([]catalog.RequirementGroup, bool) {
	members := coursesOfLists(r, blocks)
	if len(members) == 0 {
		return nil, false
	}

	var counts []int
	for _, b := range blocks {
		if b.isList() {
			for _, item := range b.items {
				counts = append(counts, pickCounts(item.Text)...)
			}
			continue
		}
		counts = append(counts, pickCounts(b.text)...)
	}

	group := catalog.RequirementGroup{
		Name:    coreGroupName,
		Pick:    len(members),
		Courses: members,
	}
	if agreed, ok := agreedCount(counts); ok {
		group.Name = pickGroupName(agreed)
		group.Pick = agreed
	}
	return []catalog.RequirementGroup{group}, true
}

func agreedCount(counts []int) (int, bool) {
	if len(counts) == 0 {
		return 0, false
	}
	for _, n := range counts[1:] {
		if n != counts[0] {
			return 0, false
		}
	}
	return counts[0], true
}
