// Package colmap builds argument lists for the COLMAP subcommands the
// pipeline runs. It only constructs arguments; execution goes through
// command.Runner.
package colmap

// Subcommand names as COLMAP spells them.
const (
	CmdFeatureExtractor  = "feature_extractor"
	CmdExhaustiveMatcher = "exhaustive_matcher"
	CmdMapper            = "mapper"
	CmdImageUndistorter  = "image_undistorter"
)

// FeatureExtractor returns the arguments for SIFT feature extraction of every
// image in imageDir into the database.
func FeatureExtractor(database, imageDir string, useGPU bool) []string {
	return []string{
		CmdFeatureExtractor,
		"--database_path", database,
		"--image_path", imageDir,
		"--SiftExtraction.use_gpu", gpuFlag(useGPU),
	}
}

// ExhaustiveMatcher returns the arguments for matching all image pairs in
// the database.
func ExhaustiveMatcher(database string, useGPU bool) []string {
	return []string{
		CmdExhaustiveMatcher,
		"--database_path", database,
		"--SiftMatching.use_gpu", gpuFlag(useGPU),
	}
}

// Mapper returns the arguments for incremental mapping and bundle
// adjustment. COLMAP writes one numbered model directory per reconstruction
// under outputDir, starting at "0".
func Mapper(database, imageDir, outputDir string) []string {
	return []string{
		CmdMapper,
		"--database_path", database,
		"--image_path", imageDir,
		"--output_path", outputDir,
	}
}

// ImageUndistorter returns the arguments for undistorting imageDir using the
// model at modelDir. Output lands directly in outputDir as images/ plus a
// flat sparse/ directory.
func ImageUndistorter(imageDir, modelDir, outputDir string) []string {
	return []string{
		CmdImageUndistorter,
		"--image_path", imageDir,
		"--input_path", modelDir,
		"--output_path", outputDir,
		"--output_type", "COLMAP",
	}
}

func gpuFlag(useGPU bool) string {
	if useGPU {
		return "1"
	}
	return "0"
}
