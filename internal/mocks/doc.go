// Package mocks provides shared test doubles for the interfaces used across
// the application.
//
// Two styles live here. Simple collaborators such as MockJWTService and
// MockTextGenerator expose function fields plus default return values.
// Stores use testify/mock so tests can assert on exact calls:
//
//	sets := &mocks.TestifyMockFlashcardSetStore{}
//	sets.On("Delete", mock.Anything, userID, setID).Return(nil)
//	defer sets.AssertExpectations(t)
//
// When adding a mock, name the file after the interface and add a
// compile-time assertion that the mock satisfies it.
package mocks
