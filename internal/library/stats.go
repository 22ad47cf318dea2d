package library

import "github.com/calvinalkan/shelf/internal/book"

// CountByGenre returns how many books there are of each genre. Genres with
// no books are absent.
func (s *Store) CountByGenre() map[book.Genre]int {
	counts := make(map[book.Genre]int)

	for _, b := range s.books {
		counts[b.Genre]++
	}

	return counts
}

// CountByStatus returns how many books there are in each status. Statuses
// with no books are absent.
func (s *Store) CountByStatus() map[book.Status]int {
	counts := make(map[book.Status]int)

	for _, b := range s.books {
		counts[b.Status]++
	}

	return counts
}

// AverageRatingByGenre returns the mean rating of each genre present.
func (s *Store) AverageRatingByGenre() map[book.Genre]float64 {
	sums := make(map[book.Genre]int)
	counts := s.CountByGenre()

	for _, b := range s.books {
		sums[b.Genre] += b.Rating
	}

	avgs := make(map[book.Genre]float64, len(counts))
	for g, n := range counts {
		avgs[g] = float64(sums[g]) / float64(n)
	}

	return avgs
}

// Stats summarizes the library.
type Stats struct {
	Total         int
	AverageRating float64 // 0 when the library is empty
	ByGenre       map[book.Genre]int
	ByStatus      map[book.Status]int
	RatingByGenre map[book.Genre]float64
}

// Stats computes all aggregates in one call.
func (s *Store) Stats() Stats {
	st := Stats{
		Total:         len(s.books),
		ByGenre:       s.CountByGenre(),
		ByStatus:      s.CountByStatus(),
		RatingByGenre: s.AverageRatingByGenre(),
	}

	if st.Total > 0 {
		sum := 0
		for _, b := range s.books {
			sum += b.Rating
		}

		st.AverageRating = float64(sum) / float64(st.Total)
	}

	return st
}
