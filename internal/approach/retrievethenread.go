package approach

import (
	"context"

	"docchat/internal/llm"
	"docchat/internal/retrieval"
)

const systemChatTemplate = "您是一个智能助手，负责帮助人们解答关于中国劳动法律法规的问题。" +
	"即使提问者用“我”提问，请使用'您'指代提问的个人。" +
	"仅使用以下来源中提供的数据回答以下问题。" +
	"对于表格信息，请以html表格形式返回。不要返回markdown格式。" +
	"每个来源的名称后跟冒号和实际信息，请在回答中始终包含您在回答中使用的每个事实的来源名称。" +
	"如果您不能使用以下来源回答问题，请说不知道。参考以下示例进行回答。"

// askQuestionShot and askAnswerShot form the single example exchange shown
// to the model so answers cite sources in the expected bracket format.
const askQuestionShot = `
'根据中国劳动法，允许的加班时间最长是多少小时？'

来源：
劳动部关于职工工作时间有关问题的复函.pdf: 中国劳动法规定，加班时间不得超过每月36小时。
广东省工资支付条例2016修正.pdf: 加班工资必须按照额外费率支付，即工作日按照员工正常工资的150%支付，周末按200%支付，公共假日按300%支付。
职工带薪年休假条例.pdf: 在中国，员工根据工龄享有5至15天的带薪年假。
`

const askAnswerShot = "根据中国劳动法，加班时间不得超过每月36小时 [劳动部关于职工工作时间有关问题的复函.pdf]。"

// RetrieveThenRead is the single-shot strategy: the user's question goes to
// the index verbatim, and one completion call answers from the retrieved
// sources. It keeps no conversation state and does not stream.
type RetrieveThenRead struct {
	completer Completer
	retriever Retriever
}

// NewRetrieveThenRead creates the single-shot ask approach.
func NewRetrieveThenRead(completer Completer, retriever Retriever) *RetrieveThenRead {
	return &RetrieveThenRead{completer: completer, retriever: retriever}
}

// Run implements Approach.
func (a *RetrieveThenRead) Run(ctx context.Context, messages []llm.Message, overrides Overrides, sessionState any) (Response, error) {
	if err := validateMessages(messages); err != nil {
		return Response{}, err
	}
	question := messages[len(messages)-1].Content

	results, err := a.retriever.Retrieve(ctx, retrieval.Options{
		QueryText:        question,
		Filter:           overrides.filter(),
		Top:              overrides.Top,
		UseText:          overrides.hasText(),
		UseVector:        overrides.hasVector(),
		SemanticRanker:   overrides.SemanticRanker,
		SemanticCaptions: overrides.SemanticCaptions,
		MinSearchScore:   overrides.MinimumSearchScore,
		MinRerankerScore: overrides.MinimumRerankerScore,
	})
	if err != nil {
		return Response{}, wrapExternal("retrieval failed", err)
	}

	systemMessage := systemChatTemplate
	if overrides.PromptTemplate != "" {
		systemMessage = overrides.PromptTemplate
	}

	answerMessages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemMessage},
		{Role: llm.RoleUser, Content: askQuestionShot},
		{Role: llm.RoleAssistant, Content: askAnswerShot},
		{Role: llm.RoleUser, Content: question + "\n\nSources:\n" + results.Content()},
	}

	completion, err := a.completer.Complete(ctx, llm.CompletionRequest{
		Messages:    answerMessages,
		Temperature: overrides.temperature(0.3),
		MaxTokens:   answerTokenLimit,
	})
	if err != nil {
		return Response{}, wrapExternal("answer generation failed", err)
	}

	return Response{
		Message: llm.Message{Role: llm.RoleAssistant, Content: completion.Content},
		Context: Context{
			DataPoints: results.SourceLines,
			Thoughts: []ThoughtStep{
				{
					Title:       "Search query",
					Description: question,
				},
				{
					Title:       "Search results",
					Description: results.SourceLines,
				},
				{
					Title:       "Prompt to generate answer",
					Description: answerMessages,
				},
			},
		},
		SessionState: sessionState,
	}, nil
}
