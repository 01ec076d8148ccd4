package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogniLearn/domain"
)

func leaf(class int) TreeNode {
	return TreeNode{Feature: -1, Left: leafChild, Right: leafChild, Class: class}
}

func stump(feature int, threshold float64, left, right int) DecisionTree {
	return DecisionTree{Nodes: []TreeNode{
		{Feature: feature, Threshold: threshold, Left: 1, Right: 2},
		leaf(left),
		leaf(right),
	}}
}

func TestDecisionTreePredict(t *testing.T) {
	tree := stump(3, 50, 2, 0)

	assert.Equal(t, 2, tree.Predict(domain.FeatureVector{0, 0, 0, 50}))
	assert.Equal(t, 0, tree.Predict(domain.FeatureVector{0, 0, 0, 50.1}))
}

func TestDecisionTreeValidate(t *testing.T) {
	tests := []struct {
		name    string
		tree    DecisionTree
		wantErr bool
	}{
		{"single leaf", DecisionTree{Nodes: []TreeNode{leaf(1)}}, false},
		{"stump", stump(0, 1, 0, 1), false},
		{"empty", DecisionTree{}, true},
		{"feature out of range", stump(4, 1, 0, 1), true},
		{"negative feature", stump(-2, 1, 0, 1), true},
		{"child out of range", DecisionTree{Nodes: []TreeNode{{Feature: 0, Left: 1, Right: 5}, leaf(0)}}, true},
		{"self loop", DecisionTree{Nodes: []TreeNode{{Feature: 0, Left: 0, Right: 1}, leaf(0)}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tree.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidModel)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRandomForestMajorityVote(t *testing.T) {
	rf := &RandomForest{Trees: []DecisionTree{
		{Nodes: []TreeNode{leaf(1)}},
		{Nodes: []TreeNode{leaf(2)}},
		{Nodes: []TreeNode{leaf(2)}},
	}}
	require.NoError(t, rf.Validate())
	assert.Equal(t, 2, rf.Predict(domain.FeatureVector{}))
}

func TestRandomForestTieGoesToSmallestClass(t *testing.T) {
	rf := &RandomForest{Trees: []DecisionTree{
		{Nodes: []TreeNode{leaf(2)}},
		{Nodes: []TreeNode{leaf(1)}},
	}}
	assert.Equal(t, 1, rf.Predict(domain.FeatureVector{}))
}

func TestRandomForestValidateEmpty(t *testing.T) {
	assert.ErrorIs(t, (&RandomForest{}).Validate(), ErrInvalidModel)
}

func TestKMeansPredict(t *testing.T) {
	km := &KMeans{Centroids: [][]float64{
		{0, 0, 0, 0},
		{10, 10, 10, 10},
		{100, 0, 0, 100},
	}}
	require.NoError(t, km.Validate())

	assert.Equal(t, 0, km.Predict(domain.FeatureVector{1, 1, 1, 1}))
	assert.Equal(t, 1, km.Predict(domain.FeatureVector{9, 9, 12, 8}))
	assert.Equal(t, 2, km.Predict(domain.FeatureVector{90, 1, 1, 95}))
}

func TestKMeansValidate(t *testing.T) {
	assert.ErrorIs(t, (&KMeans{}).Validate(), ErrInvalidModel)
	assert.ErrorIs(t, (&KMeans{Centroids: [][]float64{{1, 2, 3}}}).Validate(), ErrInvalidModel)
}

func TestLogisticRegressionPredict(t *testing.T) {
	lr := &LogisticRegression{Coefficients: []float64{0, 0, 1, -0.1}, Intercept: -2}
	require.NoError(t, lr.Validate())

	// 8 - 4 - 2 = 2 > 0
	assert.Equal(t, 1, lr.Predict(domain.FeatureVector{0, 0, 8, 40}))
	// 1 - 9 - 2 < 0
	assert.Equal(t, 0, lr.Predict(domain.FeatureVector{0, 0, 1, 90}))
	// decision exactly 0 is negative class
	assert.Equal(t, 0, lr.Predict(domain.FeatureVector{0, 0, 2, 0}))
	assert.InDelta(t, 0.5, lr.Probability(domain.FeatureVector{0, 0, 2, 0}), 1e-9)
}

func TestLogisticRegressionValidate(t *testing.T) {
	assert.ErrorIs(t, (&LogisticRegression{Coefficients: []float64{1}}).Validate(), ErrInvalidModel)
}

func TestLoaders(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	rfPath := write(PatternModelFile, `{"trees":[{"nodes":[{"feature":-1,"left":-1,"right":-1,"class":2}]}]}`)
	kmPath := write(GroupModelFile, `{"centroids":[[0,0,0,0],[1,1,1,1]]}`)
	lrPath := write(RiskModelFile, `{"coefficients":[0,0,1,0],"intercept":-5}`)

	rf, err := LoadRandomForest(rfPath)
	require.NoError(t, err)
	assert.Equal(t, 2, rf.Predict(domain.FeatureVector{}))

	km, err := LoadKMeans(kmPath)
	require.NoError(t, err)
	assert.Equal(t, 1, km.Predict(domain.FeatureVector{1, 1, 1, 1}))

	lr, err := LoadLogisticRegression(lrPath)
	require.NoError(t, err)
	assert.Equal(t, 1, lr.Predict(domain.FeatureVector{0, 0, 6, 0}))
}

func TestLoaderErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadKMeans(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{not json`), 0o600))
	_, err = LoadRandomForest(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"coefficients":[1,2]}`), 0o600))
	_, err = LoadLogisticRegression(invalid)
	assert.ErrorIs(t, err, ErrInvalidModel)
}

func TestBundledModelsLoad(t *testing.T) {
	dir := filepath.Join("..", "..", "models")

	_, err := LoadRandomForest(filepath.Join(dir, PatternModelFile))
	assert.NoError(t, err)
	_, err = LoadKMeans(filepath.Join(dir, GroupModelFile))
	assert.NoError(t, err)
	_, err = LoadLogisticRegression(filepath.Join(dir, RiskModelFile))
	assert.NoError(t, err)
}
