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
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <bitstream>",
	Short: "Trace configuration register activity per SLR",
	Long: `Replays a bitstream through the configuration engine and prints,
per SLR, the IDCODE written, every write-mode transition, and the byte
range of any frame data write/read it contains.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readFile(args[0])
		if err != nil {
			return err
		}

		eng := &xilinx.ConfigEngine{}
		eng.Hooks.OnWrite = func(ctx *xilinx.EngineContext, p xilinx.Packet) error {
			switch p.Register {
			case xilinx.RegIDCODE:
				idcode, _ := ctx.IDCode()
				fmt.Printf("SLR %d: IDCODE = %#08x\n", ctx.SLRIndex, idcode)
			case xilinx.RegCMD:
				fmt.Printf("SLR %d: CMD written, write mode now %s\n", ctx.SLRIndex, ctx.WriteMode())
			case xilinx.RegRSVD30:
				if len(p.Payload) > 0 {
					color.Yellow("SLR %d: switch-SLR (RSVD30) at offset %#x, %d payload bytes",
						ctx.SLRIndex, p.ByteOffset, len(p.Payload))
				}
			}
			return nil
		}
		eng.Hooks.OnFrameData = func(ctx *xilinx.EngineContext, p xilinx.Packet, startFrame uint32) error {
			start, end := ctx.AbsolutePayloadRange(p)
			fmt.Printf("SLR %d: %s frame data, FAR=%#08x, bytes [%#x, %#x)\n",
				ctx.SLRIndex, p.Register, startFrame, start, end)
			return nil
		}
		eng.Hooks.OnRead = func(ctx *xilinx.EngineContext, p xilinx.Packet) error {
			if p.Register == xilinx.RegFDRO {
				start, end := ctx.AbsolutePayloadRange(p)
				fmt.Printf("SLR %d: FDRO readback, bytes [%#x, %#x)\n", ctx.SLRIndex, start, end)
			}
			return nil
		}

		return eng.Process(data)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
