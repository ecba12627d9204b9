package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Indexes() IndexRepository
	Courses() CourseRepository
	Users() UserRepository
	History() HistoryRepository
}
