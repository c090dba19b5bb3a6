package question

// Pool holds every question loaded for one class, grouped by chapter.
// Chapter order is the order chapters first appeared in the source file,
// and questions keep their source order within a chapter. A Pool is built
// once at load time and never mutated afterwards; reloading a class
// replaces its pool wholesale.
type Pool struct {
	chapters  []string
	byChapter map[string][]Question
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{
		byChapter: make(map[string][]Question),
	}
}

// Add appends a question to its chapter, registering the chapter on first
// occurrence.
func (p *Pool) Add(q Question) {
	if _, ok := p.byChapter[q.Chapter]; !ok {
		p.chapters = append(p.chapters, q.Chapter)
	}
	p.byChapter[q.Chapter] = append(p.byChapter[q.Chapter], q)
}

// Chapters lists chapter names in first-seen order.
func (p *Pool) Chapters() []string {
	out := make([]string, len(p.chapters))
	copy(out, p.chapters)
	return out
}

// Questions returns the questions of one chapter in source order.
func (p *Pool) Questions(chapter string) []Question {
	qs := p.byChapter[chapter]
	out := make([]Question, len(qs))
	copy(out, qs)
	return out
}

// Union collects every question belonging to any of the selected chapters.
// Unknown chapter names contribute nothing.
func (p *Pool) Union(chapters []string) []Question {
	var out []Question
	for _, ch := range chapters {
		out = append(out, p.byChapter[ch]...)
	}
	return out
}

// Total is the number of questions across all chapters.
func (p *Pool) Total() int {
	n := 0
	for _, qs := range p.byChapter {
		n += len(qs)
	}
	return n
}
