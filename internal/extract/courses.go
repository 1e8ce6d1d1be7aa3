package extract

import (
	"catalog-crawler/internal/catalog"
	"catalog-crawler/pkg/htmlutil"
	"net/url"
)

// ParseCourseList parses the flat course listing page, every list item that defines
// a course becomes one. Links are resolved against `page`, the first definition of a
// course wins.
func ParseCourseList(r Recognizer, doc string, page *url.URL) []catalog.Course {
	var courses []catalog.Course
	seen := map[catalog.CourseID]bool{}

	for item := range htmlutil.ListItems(doc) {
		course, ok := r.Course(item.Text)
		if !ok {
			continue
		}
		if seen[course.ID] {
			continue
		}
		seen[course.ID] = true

		if item.Href != "" {
			link, err := url.Parse(item.Href)
			if err == nil {
				if page != nil {
					link = page.ResolveReference(link)
				}
				course.URL = link.String()
			}
		}
		courses = append(courses, course)
	}

	return courses
}
