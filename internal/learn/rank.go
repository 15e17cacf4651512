package learn

const maxKeywords = 8

// rankKeywords scores tokenize's candidates by frequency within the text and
// a length bias (4-character idioms first, then bigrams), then returns up to
// maxKeywords deduplicated words in descending-score order. This approximates
// the original's TF-IDF-plus-POS-class bias without a segmentation library:
// frequency stands in for TF-IDF's term weight, and idiom/common-character
// length bands stand in for POS-class preference.
func rankKeywords(text string) []string {
	candidates := tokenize(text)

	freq := make(map[string]int, len(candidates))
	order := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, seen := freq[c]; !seen {
			order = append(order, c)
		}
		freq[c]++
	}

	for _, r := range cjkRuns(text) {
		for _, single := range r {
			s := string(single)
			if isCommonSingleChar(s) {
				if _, seen := freq[s]; !seen {
					order = append(order, s)
				}
				freq[s]++
			}
		}
	}

	scored := make([]scoredWord, 0, len(order))
	for _, w := range order {
		scored = append(scored, scoredWord{word: w, score: score(w, freq[w])})
	}
	sortByScoreDesc(scored)

	out := make([]string, 0, maxKeywords)
	seen := make(map[string]bool, maxKeywords)
	for _, sw := range scored {
		if seen[sw.word] {
			continue
		}
		out = append(out, sw.word)
		seen[sw.word] = true
		if len(out) >= maxKeywords {
			break
		}
	}
	return out
}

type scoredWord struct {
	word  string
	score float64
}

func score(word string, freq int) float64 {
	lengthBias := 1.0
	switch {
	case isChengyuCandidate(word):
		lengthBias = 3.0
	case len([]rune(word)) == 2:
		lengthBias = 2.0
	}
	return lengthBias * float64(freq)
}

// sortByScoreDesc is a small insertion sort: candidate counts per commit are
// tiny (well under a hundred), so an O(n^2) stable sort keeps this file
// dependency-free without reaching for sort.Slice's interface overhead.
func sortByScoreDesc(words []scoredWord) {
	for i := 1; i < len(words); i++ {
		j := i
		for j > 0 && words[j-1].score < words[j].score {
			words[j-1], words[j] = words[j], words[j-1]
			j--
		}
	}
}
