// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package main provides the md2html command line tool
// for converting GitHub Flavored Markdown to HTML.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"zombiezen.com/go/gfm"
	"zombiezen.com/go/gfm/internal/server"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// Exit codes: 0 on success, 1 on runtime (I/O) failure,
// 2 on argument errors.
func run(args []string) int {
	runtimeFailure := false

	rootCmd := &cobra.Command{
		Use:           "md2html",
		Short:         "Convert GitHub Flavored Markdown to HTML",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	convertCmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a Markdown file and print the HTML to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				runtimeFailure = true
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), gfm.ToHTML(string(data)))
			return nil
		},
	}

	var addr string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			if err := server.New(logger).Run(addr); err != nil {
				runtimeFailure = true
				return err
			}
			return nil
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")

	rootCmd.AddCommand(convertCmd, serveCmd)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "md2html:", err)
		if runtimeFailure {
			return 1
		}
		return 2
	}
	return 0
}
