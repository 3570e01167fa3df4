package registry

import (
	"errors"
	"slices"
	"testing"

	"github.com/seqtools/ngsconf/internal/config"
)

const testConfig = `
sample_input_files:
  ATAC-seq:
    aligned_filtered_bam: "{data_dir}/{sample_name}/mapped/{sample_name}.bam"
    peaks: "{data_dir}/{sample_name}/peaks/{sample_name}_peaks.narrowPeak"
  RNA-seq:
    bitseq_counts: "{data_dir}/{sample_name}/quantification/{sample_name}_bitseq.counts"
resources:
  lola:
    region_databases:
      hg38:
        - /shared/regions/LOLACore/hg38
        - /shared/regions/customRegionDB/hg38
  meme:
    motif_databases:
      human: /shared/motifs/HOCOMOCOv10.meme
executables:
  samtools: samtools
  ame: /opt/meme/bin/ame
`

func testSnapshot(t *testing.T) *config.Resolved {
	t.Helper()

	resolved, err := config.Load([]config.Source{{Name: "test", Data: []byte(testConfig), Required: true}})
	if err != nil {
		t.Fatalf("resolve test config: %v", err)
	}
	return resolved
}

func TestResourcesPathList(t *testing.T) {
	t.Parallel()

	resources := NewResources(testSnapshot(t))

	got, err := resources.PathList("lola", "region_databases", "hg38")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"/shared/regions/LOLACore/hg38", "/shared/regions/customRegionDB/hg38"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := resources.PathList("lola", "region_databases", "mm10"); err == nil {
		t.Fatalf("expected error for unregistered genome assembly")
	}
}

func TestResourcesPath(t *testing.T) {
	t.Parallel()

	resources := NewResources(testSnapshot(t))

	got, err := resources.Path("meme", "motif_databases", "human")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/shared/motifs/HOCOMOCOv10.meme" {
		t.Fatalf("unexpected path: %s", got)
	}
}

func TestResourcesTool(t *testing.T) {
	t.Parallel()

	snapshot := testSnapshot(t)
	resources := NewResources(snapshot)

	tool, err := resources.Tool("lola")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := tool.Get("region_databases"); !ok {
		t.Fatalf("expected region_databases subtree")
	}

	// The returned subtree is a copy; mutating it must not touch the snapshot.
	tool.Set("region_databases", "mutated")
	if _, err := resources.PathList("lola", "region_databases", "hg38"); err != nil {
		t.Fatalf("snapshot affected by subtree mutation: %v", err)
	}

	if _, err := resources.Tool("homer"); err == nil {
		t.Fatalf("expected error for unregistered tool")
	}
}

func TestExecutables(t *testing.T) {
	t.Parallel()

	executables := NewExecutables(testSnapshot(t))

	command, err := executables.Command("ame")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if command != "/opt/meme/bin/ame" {
		t.Fatalf("unexpected command: %s", command)
	}

	names, err := executables.Names()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"samtools", "ame"}; !slices.Equal(names, want) {
		t.Fatalf("expected names %v in document order, got %v", want, names)
	}

	var keyErr *config.KeyError
	if _, err := executables.Command("bowtie2"); !errors.As(err, &keyErr) {
		t.Fatalf("expected KeyError for unregistered executable, got %v", err)
	}
}

func TestSampleFilesRender(t *testing.T) {
	t.Parallel()

	samples := NewSampleFiles(testSnapshot(t))

	types, err := samples.DataTypes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"ATAC-seq", "RNA-seq"}; !slices.Equal(types, want) {
		t.Fatalf("expected data types %v, got %v", want, types)
	}

	got, err := samples.Render("ATAC-seq", "aligned_filtered_bam", map[string]string{
		"data_dir":    "/x",
		"sample_name": "S1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/x/S1/mapped/S1.bam" {
		t.Fatalf("unexpected rendered path: %s", got)
	}

	var missing *config.TemplateVariableError
	_, err = samples.Render("ATAC-seq", "aligned_filtered_bam", map[string]string{"data_dir": "/x"})
	if !errors.As(err, &missing) {
		t.Fatalf("expected TemplateVariableError, got %v", err)
	}
	if missing.Variable != "sample_name" {
		t.Fatalf("expected error to name sample_name, got %s", missing.Variable)
	}

	if _, err := samples.Template("CNV", "log2_read_counts"); err == nil {
		t.Fatalf("expected error for unregistered data type")
	}
}
