// Package classifier provides the interface to the externally trained
// static-gesture classifier. The model itself (label set and weights) is
// opaque configuration supplied at startup; this package only moves
// feature vectors in and predictions out.
package classifier

// Prediction is the classifier output for one feature vector.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"` // in [0,1]
}

// Classifier defines the interface for gesture classification backends.
type Classifier interface {
	// Classify maps a feature vector to a gesture label with confidence.
	Classify(features []float64) (Prediction, error)

	// Close releases any resources held by the classifier.
	Close() error
}

// MockClassifier is a test implementation that returns pre-configured
// predictions.
type MockClassifier struct {
	prediction Prediction
	err        error
	calls      int
}

// NewMockClassifier creates a MockClassifier that answers every request
// with the given prediction.
func NewMockClassifier(label string, confidence float64) *MockClassifier {
	return &MockClassifier{
		prediction: Prediction{Label: label, Confidence: confidence},
	}
}

// SetPrediction sets the prediction returned by Classify.
func (m *MockClassifier) SetPrediction(label string, confidence float64) {
	m.prediction = Prediction{Label: label, Confidence: confidence}
}

// SetError sets the error returned by Classify.
func (m *MockClassifier) SetError(err error) {
	m.err = err
}

// Calls returns how many times Classify has been invoked.
func (m *MockClassifier) Calls() int {
	return m.calls
}

// Classify returns the pre-configured prediction or error.
func (m *MockClassifier) Classify(features []float64) (Prediction, error) {
	m.calls++
	if m.err != nil {
		return Prediction{}, m.err
	}
	return m.prediction, nil
}

// Close is a no-op for the mock classifier.
func (m *MockClassifier) Close() error {
	return nil
}
