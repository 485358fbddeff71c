// Package deployment fetches compiled model deployments from Edge Impulse
// Studio.
//
// The pipeline mirrors what the Studio UI does for an on-device deployment:
// trigger a build job for the project's default impulse, poll the job until
// it finishes, download the resulting zip archive, extract it, and parse
// the generated model metadata header.
//
//	cfg, err := deployment.ConfigFromEnv()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := deployment.NewClient(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	bundle, err := client.Fetch(ctx, "model")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(bundle.Metadata.ProjectName)
//
// Concurrent fetches for the same project share a single pipeline run.
package deployment
