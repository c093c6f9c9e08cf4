package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSpeechForms_EmptyBody(t *testing.T) {
	forms, err := parseSpeechForms(nil)
	assert.NoError(t, err)
	assert.Equal(t, []SpeechForm{}, forms)

	forms, err = parseSpeechForms([]byte{})
	assert.NoError(t, err)
	assert.Equal(t, []SpeechForm{}, forms)
}

func TestParseSpeechForms_SingleObject(t *testing.T) {
	raw := []byte(`{"speaker_name": "Rev. Smith", "speech_type": "eulogy"}`)

	forms, err := parseSpeechForms(raw)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(forms))
	assert.Equal(t, "Rev. Smith", forms[0].SpeakerName)
	assert.Equal(t, "eulogy", forms[0].SpeechType)
}

func TestParseSpeechForms_List(t *testing.T) {
	raw := []byte(`[
		{"speaker_name": "Rev. Smith", "speech_type": "eulogy"},
		{"speaker_name": "Mary Doe", "speech_type": "remarks", "relationship": "daughter"}
	]`)

	forms, err := parseSpeechForms(raw)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(forms))
	assert.Equal(t, "Mary Doe", forms[1].SpeakerName)
	assert.Equal(t, "daughter", *forms[1].Relationship)
}

func TestParseSpeechForms_EmptyList(t *testing.T) {
	forms, err := parseSpeechForms([]byte(`[]`))
	assert.NoError(t, err)
	assert.Equal(t, 0, len(forms))
}

func TestParseSpeechForms_Malformed(t *testing.T) {
	_, err := parseSpeechForms([]byte(`{"speaker_name": `))
	assert.Error(t, err)
}

func TestParseSpeechForms_UnknownFieldRejected(t *testing.T) {
	_, err := parseSpeechForms([]byte(`{"speaker_name": "A", "speech_type": "eulogy", "bogus_field": 1}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bogus_field")

	_, err = parseSpeechForms([]byte(`[{"speaker_name": "A", "speech_type": "eulogy", "bogus_field": 1}]`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bogus_field")
}
