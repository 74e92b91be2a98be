package classify

import (
	"testing"

	"github.com/ginjaninja78/survey-tables/internal/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(fields map[string]string) types.Row {
	return types.NewRow(2, fields)
}

func TestDefaultRuleSetIsValid(t *testing.T) {
	rs := DefaultRuleSet()
	require.NoError(t, rs.Validate())

	for name, mode := range RequiredAxes {
		a := rs.Axis(name)
		require.NotNil(t, a, name)
		assert.Equal(t, mode, a.Mode, name)
	}
}

func TestClassifySketchRow(t *testing.T) {
	c := Default()
	got := c.Classify(row(map[string]string{
		types.ColTitle:           "Graph Sketching at Scale",
		types.ColDetailedSummary: "We maintain a count-min sketch over the edge stream counts.",
	}))

	assert.Equal(t, "Summaries/Sketches", got.RepresentationOperator)
	// "stream" in the summary drives the primary stage.
	assert.Equal(t, "Streaming", got.UpdateRegime)
	assert.Equal(t, "Task-aware", got.FidelityTarget)
	assert.Equal(t, "Embedding-based", got.LearningParadigm)
}

func TestClassifyEmptyRow(t *testing.T) {
	got := Default().Classify(row(nil))

	want := Result{
		RepresentationOperator: "Embeddings",
		UpdateRegime:           "NR",
		FidelityTarget:         "Task-aware",
		LearningParadigm:       "Embedding-based",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "NR", got.Structural())
	assert.Equal(t, "NR", got.System())
	assert.False(t, got.HasStructural())
	assert.False(t, got.HasSystem())
}

func TestRepresentationFirstMatchWins(t *testing.T) {
	c := Default()

	// Both the sketch rule and the coarsening rule fire; the earlier rule wins.
	r := row(map[string]string{
		types.ColCompression:     "hierarchical pooling",
		types.ColDetailedSummary: "a MinHash signature per node",
	})
	assert.Equal(t, "Summaries/Sketches", c.Label(AxisRepresentation, r))

	r = row(map[string]string{
		types.ColSteps:     "prune low-weight edges",
		types.ColObjective: "quantization of features",
	})
	assert.Equal(t, "Sampling/Sparsification", c.Label(AxisRepresentation, r))

	r = row(map[string]string{types.ColObjective: "video codec"})
	assert.Equal(t, "Quantization/Codec", c.Label(AxisRepresentation, r))
}

func TestUpdateRegime(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{
			name:   "primary streaming",
			fields: map[string]string{types.ColEvaluationProc: "Online evaluation"},
			want:   "Streaming",
		},
		{
			name:   "primary mini-batch",
			fields: map[string]string{types.ColObjective: "sliding graphs"},
			want:   "Mini-batch",
		},
		{
			name:   "primary episodic",
			fields: map[string]string{types.ColEvaluationProc: "5-fold cross validation"},
			want:   "Episodic",
		},
		{
			name:   "title fallback streaming",
			fields: map[string]string{types.ColTitle: "Network Intrusion Detection"},
			want:   "Streaming",
		},
		{
			name:   "title fallback mini-batch",
			fields: map[string]string{types.ColTitle: "Wind Power Forecast"},
			want:   "Mini-batch",
		},
		{
			name:   "title fallback episodic",
			fields: map[string]string{types.ColTitle: "3D Pose Estimation"},
			want:   "Episodic",
		},
		{
			name: "primary stage beats title fallback",
			fields: map[string]string{
				types.ColTitle:          "Wind Forecast",
				types.ColEvaluationProc: "online",
			},
			want: "Streaming",
		},
		{
			name:   "fallback keywords outside the title are ignored",
			fields: map[string]string{types.ColDetailedSummary: "intrusion detection"},
			want:   "NR",
		},
	}

	c := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Label(AxisUpdateRegime, row(tt.fields)))
		})
	}
}

func TestFidelityAndLearning(t *testing.T) {
	c := Default()

	assert.Equal(t, "Topology", c.Label(AxisFidelity, row(map[string]string{
		types.ColEvaluationMethod: "We measure Modularity and node labels",
	})))
	assert.Equal(t, "Labels/Semantics", c.Label(AxisFidelity, row(map[string]string{
		types.ColDetailedSummary: "uses node labels",
	})))

	assert.Equal(t, "GNN-based", c.Label(AxisLearning, row(map[string]string{
		types.ColSteps: "GCN encoder",
	})))
	assert.Equal(t, "Classical/Algorithmic", c.Label(AxisLearning, row(map[string]string{
		types.ColObjective: "pagerank scores",
	})))
}

func TestEvidenceTagsAccumulate(t *testing.T) {
	c := Default()

	r := row(map[string]string{
		types.ColEvaluationMethod: "Laplacian eigenvalues and shortest path, community detection (NMI)",
		types.ColResults:          "Inference at 30 FPS on Jetson Nano",
	})
	got := c.Classify(r)

	assert.Equal(t, []string{"Homophily/Comm.", "Spectral", "Paths"}, got.StructuralTags)
	assert.Equal(t, "Homophily/Comm., Spectral, Paths", got.Structural())
	assert.True(t, got.HasStructural())

	assert.Equal(t, []string{"Throughput/FPS", "Edge device"}, got.SystemTags)
	assert.Equal(t, "Throughput/FPS, Edge device", got.System())
}

func TestSystemTagsSubstringMatch(t *testing.T) {
	// "ms" is a raw substring keyword, so "algorithms" counts as latency evidence.
	got := Default().Tags(AxisSystem, row(map[string]string{
		types.ColDetailedSummary: "compared algorithms",
	}))
	assert.Equal(t, []string{"Latency"}, got)
}

func TestLabelsAreEnumerated(t *testing.T) {
	c := Default()
	rows := []types.Row{
		row(nil),
		row(map[string]string{types.ColTitle: "Traffic sketch with GNN"}),
		row(map[string]string{types.ColDetailedSummary: "spectral coarsening, latency 4 ms, 2 GB memory"}),
		row(map[string]string{types.ColEvaluationMethod: "link prediction", types.ColObjective: "semantic labels"}),
	}

	for _, r := range rows {
		res := c.Classify(r)
		labels := map[string]string{
			AxisRepresentation: res.RepresentationOperator,
			AxisUpdateRegime:   res.UpdateRegime,
			AxisFidelity:       res.FidelityTarget,
			AxisLearning:       res.LearningParadigm,
		}
		for axis, label := range labels {
			assert.Contains(t, c.Rules().Axis(axis).Labels(), label, axis)
		}
		for _, tag := range res.StructuralTags {
			assert.Contains(t, c.Rules().Axis(AxisStructural).Labels(), tag)
		}
		for _, tag := range res.SystemTags {
			assert.Contains(t, c.Rules().Axis(AxisSystem).Labels(), tag)
		}

		// Deterministic for identical input.
		assert.Equal(t, res, c.Classify(r))
	}
}

func TestLabelsIncludeDefaults(t *testing.T) {
	rs := DefaultRuleSet()
	assert.Equal(t, []string{"Streaming", "Mini-batch", "Episodic", "NR"}, rs.Axis(AxisUpdateRegime).Labels())
	assert.Contains(t, rs.Axis(AxisSystem).Labels(), NotReported)
}

func TestNewRejectsInvalid(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&RuleSet{})
	assert.Error(t, err)
}

func TestUnknownAxis(t *testing.T) {
	c := Default()
	assert.Equal(t, NotReported, c.Label("nope", row(nil)))
	assert.Nil(t, c.Tags("nope", row(nil)))
}
