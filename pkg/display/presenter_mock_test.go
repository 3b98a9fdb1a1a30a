package display

import (
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/itohio/waveid/pkg/classify"
)

// MockDisplay records the calls a Presenter makes.
type MockDisplay struct {
	mock.Mock
}

func (m *MockDisplay) Clear()                 { m.Called() }
func (m *MockDisplay) SetCursor(col, row int) { m.Called(col, row) }
func (m *MockDisplay) Print(text string)      { m.Called(text) }

func TestPresenter_DrawSequence(t *testing.T) {
	m := new(MockDisplay)
	p := NewPresenter(m, English)

	calls := []*mock.Call{
		m.On("Clear").Return().Once(),
		m.On("SetCursor", 0, 0).Return().Once(),
		m.On("Print", "Waveform: ").Return().Once(),
		m.On("SetCursor", 0, 1).Return().Once(),
		m.On("Print", "Triangle").Return().Once(),
	}
	mock.InOrder(calls...)

	p.Next(Readout{Shape: classify.Triangle})
	m.AssertExpectations(t)
}

func TestPresenter_SingleLineScreen(t *testing.T) {
	m := new(MockDisplay)
	p := NewPresenter(m, Spanish)

	m.On("Clear").Return().Once()
	m.On("SetCursor", 0, 0).Return().Once()
	m.On("Print", "Esperando...").Return().Once()

	p.Waiting()

	m.AssertExpectations(t)
	m.AssertNotCalled(t, "SetCursor", 0, 1)
}
