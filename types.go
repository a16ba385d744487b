package pubfront

import "github.com/eringen/pubfront/views"

// BlogPost is the core content type stored in SQLite and rendered by the layouts.
type BlogPost struct {
	Title     string
	Date      string
	Tags      []string
	Summary   string
	Path      string // site-relative, e.g. "blog/hello-world"
	Slug      string
	Content   string
	Published bool
}

func (p BlogPost) summary() views.PostSummary {
	return views.PostSummary{
		Path:    p.Path,
		Date:    p.Date,
		Title:   p.Title,
		Summary: p.Summary,
		Tags:    p.Tags,
	}
}

func (p BlogPost) content() views.PostContent {
	return views.PostContent{
		Path:  p.Path,
		Slug:  p.Slug,
		Date:  p.Date,
		Title: p.Title,
		Tags:  p.Tags,
	}
}

func (p BlogPost) nav() *views.PostNav {
	return &views.PostNav{Path: p.Path, Title: p.Title}
}

func summaries(posts []BlogPost) []views.PostSummary {
	out := make([]views.PostSummary, len(posts))
	for i, p := range posts {
		out[i] = p.summary()
	}
	return out
}
