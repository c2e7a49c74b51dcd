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
	"fmt"

	"github.com/erincandescent/unbit/xilinx"
	"github.com/spf13/cobra"
)

var dumpBitstreamCmd = &cobra.Command{
	Use:   "dump-bitstream <bitstream>",
	Short: "Print every configuration packet in a bitstream",
	Long:  `Scans to the SYNC word and prints each Type-1/Type-2 packet's header fields and payload length.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readFile(args[0])
		if err != nil {
			return err
		}

		return xilinx.ParsePackets(data, func(p xilinx.Packet) (bool, error) {
			switch p.Op {
			case xilinx.OpWrite, xilinx.OpRead:
				fmt.Printf("%08x: %-5s %-5s reg=%-8s words=%d\n",
					p.ByteOffset, p.Kind, p.Op, p.Register, p.WordCount)
			default:
				fmt.Printf("%08x: %-5s %-5s words=%d\n",
					p.ByteOffset, p.Kind, p.Op, p.WordCount)
			}
			return true, nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dumpBitstreamCmd)
}
