package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/phpunitxml/internal/document"
)

func parse(t *testing.T, xml string) *document.Document {
	t.Helper()
	doc, err := document.Parse("phpunit.xml", []byte(xml))
	require.NoError(t, err)
	return doc
}
