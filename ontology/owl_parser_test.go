package ontology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const owlHeader = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:owl="http://www.w3.org/2002/07/owl#">
`

func TestParseOWLSomeValuesFromRestriction(t *testing.T) {
	doc := owlHeader + `
  <owl:Class rdf:about="http://purl.obolibrary.org/obo/CHEBI_1">
    <rdfs:label>alpha</rdfs:label>
    <rdfs:subClassOf>
      <owl:Restriction>
        <owl:onProperty rdf:resource="http://purl.obolibrary.org/obo/has_part"/>
        <owl:someValuesFrom rdf:resource="http://purl.obolibrary.org/obo/CHEBI_2"/>
      </owl:Restriction>
    </rdfs:subClassOf>
  </owl:Class>
</rdf:RDF>`

	ont, err := ParseOWL(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, ont.Terms, 1)

	term := ont.Terms[0]
	require.Equal(t, "CHEBI:1", term.ID)
	require.Equal(t, "alpha", term.Name)
	require.Len(t, term.Relationships, 1)
	require.Equal(t, "CHEBI:2", term.Relationships[0].TargetID)
}

func TestParseOWLRejectsAllValuesFrom(t *testing.T) {
	doc := owlHeader + `
  <owl:Class rdf:about="http://purl.obolibrary.org/obo/CHEBI_1">
    <rdfs:subClassOf>
      <owl:Restriction>
        <owl:onProperty rdf:resource="http://purl.obolibrary.org/obo/has_part"/>
        <owl:allValuesFrom rdf:resource="http://purl.obolibrary.org/obo/CHEBI_2"/>
      </owl:Restriction>
    </rdfs:subClassOf>
  </owl:Class>
</rdf:RDF>`

	_, err := ParseOWL(strings.NewReader(doc))
	require.Error(t, err)

	var unsupported *UnsupportedConstructError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "owl:allValuesFrom", unsupported.Construct)
}

func TestParseOWLRejectsUnionOf(t *testing.T) {
	doc := owlHeader + `
  <owl:Class rdf:about="http://purl.obolibrary.org/obo/CHEBI_1">
    <owl:equivalentClass>
      <owl:Class>
        <owl:unionOf rdf:parseType="Collection">
          <owl:Class rdf:about="http://purl.obolibrary.org/obo/CHEBI_2"/>
          <owl:Class rdf:about="http://purl.obolibrary.org/obo/CHEBI_3"/>
        </owl:unionOf>
      </owl:Class>
    </owl:equivalentClass>
  </owl:Class>
</rdf:RDF>`

	_, err := ParseOWL(strings.NewReader(doc))
	require.Error(t, err)

	var unsupported *UnsupportedConstructError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "owl:unionOf", unsupported.Construct)
}

func TestParseOWLEquivalentClassIntersection(t *testing.T) {
	doc := owlHeader + `
  <owl:Class rdf:about="http://purl.obolibrary.org/obo/CHEBI_1">
    <owl:equivalentClass>
      <owl:Class>
        <owl:intersectionOf rdf:parseType="Collection">
          <owl:Class rdf:about="http://purl.obolibrary.org/obo/CHEBI_2"/>
          <owl:Restriction>
            <owl:onProperty rdf:resource="http://purl.obolibrary.org/obo/has_part"/>
            <owl:someValuesFrom rdf:resource="http://purl.obolibrary.org/obo/CHEBI_3"/>
          </owl:Restriction>
        </owl:intersectionOf>
      </owl:Class>
    </owl:equivalentClass>
  </owl:Class>
</rdf:RDF>`

	ont, err := ParseOWL(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, ont.Terms, 1)

	parts := ont.Terms[0].EquivalentTo
	require.Len(t, parts, 2)
	require.Equal(t, "CHEBI:2", parts[0].TargetID)
	require.Empty(t, parts[0].Relationship)
	require.Equal(t, "CHEBI:3", parts[1].TargetID)
	require.Equal(t, "has_part", parts[1].Relationship)
}

func TestParseOWLTransitiveObjectProperty(t *testing.T) {
	doc := owlHeader + `
  <owl:ObjectProperty rdf:about="http://purl.obolibrary.org/obo/part_of">
    <rdf:type rdf:resource="http://www.w3.org/2002/07/owl#TransitiveProperty"/>
    <rdfs:label>part of</rdfs:label>
  </owl:ObjectProperty>
</rdf:RDF>`

	ont, err := ParseOWL(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, ont.TypeDefs, 1)
	require.True(t, ont.TypeDefs[0].IsTransitive)
	require.Equal(t, "part of", ont.TypeDefs[0].Name)
}
