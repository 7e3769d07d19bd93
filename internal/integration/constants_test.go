package integration_test

const (
	// User related constants
	TestUserName     = "John Doe"
	TestUserEmail    = "test@example.com"
	TestUserPassword = "Test123!@#"

	// Catalog fixtures seeded by testdata/catalog_up.sql
	TestSeedUserId = "2b0e9a4c-3f6d-4c8a-b1e5-7d9f2a4c6e80"
	TestMovieId    = "f47ac10b-58cc-4372-a567-0e02b2c3d479"
	TestCityId     = "9c858901-8a57-4791-81fe-4c455b099bc9"
	TestCinemaId   = "16fd2706-8baf-433b-82eb-8c7fada847da"
	TestShowtimeId = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	TestMovieTitle   = "Interstellar"
	TestCityName     = "Mumbai"
	TestCinemaName   = "CineFlow Grand"
	TestAuditorium   = "Audi 3"
	TestShowtimeDate = "2095-01-01T13:00:00Z"
)
