// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/analyzerkit/services/data"
	"github.com/AleutianAI/analyzerkit/services/data/api"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	fetchURL      string // Repository URL
	fetchRef      string // Reference name
	fetchHash     string // Commit hash (files)
	fetchBaseHash string // Base commit hash (changes)
	fetchHeadHash string // Head commit hash (changes)
	fetchContents bool   // Request raw contents
	fetchUASTs    bool   // Request UASTs
	fetchUnicode  bool   // Convert positions to codepoint offsets
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Stream files or changes from the data service",
}

var fetchFilesCmd = &cobra.Command{
	Use:   "files",
	Short: "Stream the files of one revision",
	Long: `Streams the files of a revision and prints one line per record.

Requesting neither --contents nor --uasts is a metadata-only fetch and
is perfectly legal; language detection is requested automatically
whenever contents or UASTs are.`,
	RunE: runFetchFiles,
}

var fetchChangesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Stream the changed files between two revisions",
	RunE:  runFetchChanges,
}

func init() {
	for _, cmd := range []*cobra.Command{fetchFilesCmd, fetchChangesCmd} {
		cmd.Flags().StringVar(&fetchURL, "url", "", "Repository URL")
		cmd.Flags().StringVar(&fetchRef, "ref", "refs/heads/master", "Reference name")
		cmd.Flags().BoolVar(&fetchContents, "contents", false, "Request raw file contents")
		cmd.Flags().BoolVar(&fetchUASTs, "uasts", false, "Request parsed syntax trees")
		cmd.Flags().BoolVar(&fetchUnicode, "unicode", false,
			"Convert positions to codepoint offsets")
		_ = cmd.MarkFlagRequired("url")
	}
	fetchFilesCmd.Flags().StringVar(&fetchHash, "hash", "", "Commit hash")
	fetchChangesCmd.Flags().StringVar(&fetchBaseHash, "base-hash", "", "Base commit hash")
	fetchChangesCmd.Flags().StringVar(&fetchHeadHash, "head-hash", "", "Head commit hash")

	fetchCmd.AddCommand(fetchFilesCmd)
	fetchCmd.AddCommand(fetchChangesCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runFetchFiles(cmd *cobra.Command, args []string) error {
	ds := data.NewDataService(cliConfig.Endpoint)
	defer ds.Shutdown()

	ctx := cmd.Context()
	stub, err := ds.GetData(ctx)
	if err != nil {
		return err
	}
	ptr := api.ReferencePointer{URL: fetchURL, Ref: fetchRef, Hash: fetchHash}
	files, err := data.RequestFiles(ctx, stub, ptr, fetchContents, fetchUASTs, fetchUnicode)
	if err != nil {
		return err
	}

	count, err := printFiles(ctx, ds, files)
	if err != nil {
		return err
	}
	slog.Info("Fetch complete", "files", count)
	return nil
}

func runFetchChanges(cmd *cobra.Command, args []string) error {
	ds := data.NewDataService(cliConfig.Endpoint)
	defer ds.Shutdown()

	ctx := cmd.Context()
	stub, err := ds.GetData(ctx)
	if err != nil {
		return err
	}
	base := api.ReferencePointer{URL: fetchURL, Ref: fetchRef, Hash: fetchBaseHash}
	head := api.ReferencePointer{URL: fetchURL, Ref: fetchRef, Hash: fetchHeadHash}
	changes, err := data.RequestChanges(ctx, stub, base, head,
		fetchContents, fetchUASTs, fetchUnicode)
	if err != nil {
		return err
	}

	count := 0
	for {
		change, err := changes.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			ds.CloseChannel(ctx)
			return err
		}
		count++
		fmt.Printf("%s\n", describeChange(change))
	}
	slog.Info("Fetch complete", "changes", count)
	return nil
}

// printFiles drains a file stream to stdout, invalidating the channel
// on transport failure before propagating it.
func printFiles(ctx context.Context, ds *data.DataService, files *data.FileStream) (int, error) {
	count := 0
	for {
		f, err := files.Next()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			ds.CloseChannel(ctx)
			return count, err
		}
		count++
		fmt.Printf("%s\t%s\t%d bytes\tuast=%v\n", f.Path, f.Language, len(f.Content), f.UAST != nil)
	}
}

// describeChange renders one change record for the terminal.
func describeChange(ch *api.Change) string {
	switch {
	case ch.Base == nil && ch.Head != nil:
		return fmt.Sprintf("A\t%s", ch.Head.Path)
	case ch.Base != nil && ch.Head == nil:
		return fmt.Sprintf("D\t%s", ch.Base.Path)
	case ch.Base != nil && ch.Head != nil:
		return fmt.Sprintf("M\t%s", ch.Head.Path)
	}
	return "?"
}
