package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/stratusctl/stratus/internal/aws"
	"github.com/stratusctl/stratus/internal/ui"
)

var s3Cmd = &cobra.Command{
	Use:   "s3",
	Short: "Manage S3 buckets and objects",
	Long: `List buckets, inspect their contents, and move files in and out of S3.

Examples:
  stratus s3 ls                          # List buckets
  stratus s3 objects my-bucket           # List objects in a bucket
  stratus s3 upload report.csv my-bucket # Upload with the file name as key
  stratus s3 download my-bucket report.csv ./out.csv`,
}

var s3LsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List S3 buckets",
	RunE:    runS3List,
}

var s3ObjectsCmd = &cobra.Command{
	Use:   "objects <bucket>",
	Short: "List objects in a bucket",
	Long: `List the objects in a bucket, optionally under a key prefix.

Examples:
  stratus s3 objects my-bucket
  stratus s3 objects my-bucket --prefix backups/`,
	Args: cobra.ExactArgs(1),
	RunE: runS3Objects,
}

var s3UploadCmd = &cobra.Command{
	Use:   "upload <file> <bucket> [key]",
	Short: "Upload a local file to a bucket",
	Long: `Upload a local file to a bucket. The object key defaults to the
file name when omitted.

Examples:
  stratus s3 upload report.csv my-bucket
  stratus s3 upload report.csv my-bucket backups/report-2024.csv`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runS3Upload,
}

var s3DownloadCmd = &cobra.Command{
	Use:   "download <bucket> <key> [dest]",
	Short: "Download an object to a local file",
	Long: `Download an object to a local file. The destination defaults to the
key's file name in the current directory.

Examples:
  stratus s3 download my-bucket report.csv
  stratus s3 download my-bucket backups/report.csv ./report.csv`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runS3Download,
}

var s3ObjectsPrefix string

func init() {
	rootCmd.AddCommand(s3Cmd)
	s3Cmd.AddCommand(s3LsCmd)
	s3Cmd.AddCommand(s3ObjectsCmd)
	s3Cmd.AddCommand(s3UploadCmd)
	s3Cmd.AddCommand(s3DownloadCmd)

	s3ObjectsCmd.Flags().StringVar(&s3ObjectsPrefix, "prefix", "", "Only list keys under this prefix")
}

func runS3List(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}
	storage := aws.NewStorageProvider(client)

	buckets, err := storage.ListBuckets(ctx)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	if len(buckets) == 0 {
		log.Warningf("no buckets found")
		return nil
	}

	ui.PrintBucketTable(buckets)
	log.Successf("listed %d buckets", len(buckets))
	return nil
}

func runS3Objects(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	bucket := args[0]

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}
	storage := aws.NewStorageProvider(client)

	objects, err := storage.ListObjects(ctx, bucket, s3ObjectsPrefix)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	if len(objects) == 0 {
		log.Warningf("no objects found in %s", bucket)
		return nil
	}

	ui.PrintObjectTable(objects)
	log.Successf("listed %d objects in %s", len(objects), bucket)
	return nil
}

func runS3Upload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	local := args[0]
	bucket := args[1]

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	// Validate the local file before touching the network
	info, err := os.Stat(local)
	if err != nil {
		err = fmt.Errorf("local file %s not found", local)
		log.Errorf("%v", err)
		return err
	}
	if info.IsDir() {
		err = fmt.Errorf("%s is a directory", local)
		log.Errorf("%v", err)
		return err
	}

	key := filepath.Base(local)
	if len(args) > 2 {
		key = args[2]
	}

	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}
	storage := aws.NewStorageProvider(client)

	ok, err := storage.BucketExists(ctx, bucket)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	if !ok {
		err = fmt.Errorf("bucket %s does not exist or is not accessible", bucket)
		log.Errorf("%v", err)
		return err
	}

	sp := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	sp.Suffix = fmt.Sprintf(" Uploading %s ...", local)
	sp.Start()
	n, err := storage.Upload(ctx, bucket, key, local)
	sp.Stop()

	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	log.Successf("uploaded %s to s3://%s/%s (%s)", local, bucket, key, humanize.Bytes(uint64(n)))
	return nil
}

func runS3Download(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	bucket := args[0]
	key := args[1]

	dest := filepath.Base(key)
	if len(args) > 2 {
		dest = args[2]
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}
	storage := aws.NewStorageProvider(client)

	ok, err := storage.BucketExists(ctx, bucket)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	if !ok {
		err = fmt.Errorf("bucket %s does not exist or is not accessible", bucket)
		log.Errorf("%v", err)
		return err
	}

	sp := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	sp.Suffix = fmt.Sprintf(" Downloading s3://%s/%s ...", bucket, key)
	sp.Start()
	n, err := storage.Download(ctx, bucket, key, dest)
	sp.Stop()

	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	log.Successf("downloaded s3://%s/%s to %s (%s)", bucket, key, dest, humanize.Bytes(uint64(n)))
	return nil
}
