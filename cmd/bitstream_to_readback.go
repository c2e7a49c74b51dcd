// Copyright © 2019 Erin Shepherd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"github.com/erincandescent/unbit/xilinx"
	"github.com/spf13/cobra"
)

var bitstreamToReadbackCmd = &cobra.Command{
	Use:   "bitstream-to-readback <in.bit> <out.rbd>",
	Short: "Convert a configuration bitstream to the shape of a readback capture",
	Long: `Extracts every SLR's frame data from a plain bitstream and
concatenates it in SLR order, producing the frame-data part of a
readback capture (frame data only; no pipeline padding, padding frame or
packet framing).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readFile(args[0])
		if err != nil {
			return err
		}

		bs, err := xilinx.Load(data)
		if err != nil {
			return err
		}

		return writeFile(args[1], bs.SaveAsReadback())
	},
}

func init() {
	rootCmd.AddCommand(bitstreamToReadbackCmd)
}
