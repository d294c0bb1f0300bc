package ui

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"

	"github.com/stratusctl/stratus/pkg/types"
)

// RenderBucketTable renders S3 buckets as a styled box table with a
// trailing summary line.
func RenderBucketTable(buckets []types.Bucket) string {
	t := newBoxTable(
		col{title: "Name"},
		col{title: "Region", width: 16},
		col{title: "Created", width: 20},
	)

	for _, b := range buckets {
		created := "-"
		if !b.CreatedAt.IsZero() {
			created = b.CreatedAt.Format("2006-01-02 15:04:05")
		}
		t.addRow(
			cell{b.Name, NameStyle},
			cell{formatOptional(b.Region), MutedStyle},
			cell{created, MutedStyle},
		)
	}

	return t.render() + fmt.Sprintf("  %d buckets\n", len(buckets))
}

// PrintBucketTable prints S3 buckets in a styled box table
func PrintBucketTable(buckets []types.Bucket) {
	fmt.Print(RenderBucketTable(buckets))
}

// RenderObjectTable renders S3 objects as a styled box table with a
// trailing summary line including the total size.
func RenderObjectTable(objects []types.Object) string {
	t := newBoxTable(
		col{title: "Key", maxWidth: 60},
		col{title: "Size", width: 10},
		col{title: "Class", width: 14},
		col{title: "Last Modified", width: 20},
	)

	var totalSize int64
	for _, obj := range objects {
		totalSize += obj.Size

		modified := "-"
		if !obj.LastModified.IsZero() {
			modified = obj.LastModified.Format("2006-01-02 15:04:05")
		}
		t.addRow(
			cell{obj.Key, KeyStyle},
			cell{humanize.Bytes(uint64(obj.Size)), SizeStyle},
			cell{formatOptional(obj.StorageClass), MutedStyle},
			cell{modified, MutedStyle},
		)
	}

	return t.render() + fmt.Sprintf("  %d objects, %s total\n", len(objects), humanize.Bytes(uint64(totalSize)))
}

// PrintObjectTable prints S3 objects in a styled box table
func PrintObjectTable(objects []types.Object) {
	fmt.Print(RenderObjectTable(objects))
}
